package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// the page's filter widgets are plain <select> elements whose "change"
// handlers trigger the actual re-query, so selection has to go through the
// DOM and dispatch the event rather than use keyboard emulation.

const selectByLabelJS = `(() => {
	const sel = document.querySelector(%q);
	if (!sel) return false;
	for (const opt of sel.options) {
		if (opt.textContent.trim() === %q) {
			sel.value = opt.value;
			sel.dispatchEvent(new Event("change", { bubbles: true }));
			return true;
		}
	}
	return false;
})()`

const selectByIndexJS = `(() => {
	const sel = document.querySelector(%q);
	if (!sel || %d >= sel.options.length) return false;
	sel.selectedIndex = %d;
	sel.dispatchEvent(new Event("change", { bubbles: true }));
	return true;
})()`

const scrollToBottomJS = `window.scrollTo(0, document.body.scrollHeight)`

type selectByLabel struct {
	selector string
	label    string
}

// SelectByLabel picks a dropdown option by its visible text.
func SelectByLabel(selector, label string) Step {
	return selectByLabel{selector: selector, label: label}
}

func (st selectByLabel) describe() string {
	return fmt.Sprintf("select option %q in %q", st.label, st.selector)
}

func (st selectByLabel) run(ctx context.Context, s *Session) error {
	if err := s.bounded(st.describe(), chromedp.WaitVisible(st.selector, chromedp.ByQuery)); err != nil {
		return err
	}

	var found bool
	js := fmt.Sprintf(selectByLabelJS, st.selector, st.label)
	if err := s.bounded(st.describe(), chromedp.Evaluate(js, &found)); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no option labeled %q", st.label)
	}
	return nil
}

type selectByIndex struct {
	selector string
	index    int
}

// SelectByIndex picks a dropdown option by position.
func SelectByIndex(selector string, index int) Step {
	return selectByIndex{selector: selector, index: index}
}

func (st selectByIndex) describe() string {
	return fmt.Sprintf("select option %d in %q", st.index, st.selector)
}

func (st selectByIndex) run(ctx context.Context, s *Session) error {
	if err := s.bounded(st.describe(), chromedp.WaitVisible(st.selector, chromedp.ByQuery)); err != nil {
		return err
	}

	var found bool
	js := fmt.Sprintf(selectByIndexJS, st.selector, st.index, st.index)
	if err := s.bounded(st.describe(), chromedp.Evaluate(js, &found)); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no option at index %d", st.index)
	}
	return nil
}

type expandAll struct {
	buttonText string
	clicks     int
}

// ExpandAll clicks a "load more"-style button the given number of times,
// waiting for it to reappear between clicks. Each wait is individually
// bounded; a button that never comes back fails with ErrLocatorTimeout.
func ExpandAll(buttonText string, clicks int) Step {
	return expandAll{buttonText: buttonText, clicks: clicks}
}

func (st expandAll) describe() string {
	return fmt.Sprintf("click %q %d times", st.buttonText, st.clicks)
}

func (st expandAll) xpath() string {
	return fmt.Sprintf(`//button[text()=%q]`, st.buttonText)
}

func (st expandAll) run(ctx context.Context, s *Session) error {
	xpath := st.xpath()
	for i := 0; i < st.clicks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.bounded(
			fmt.Sprintf("click %q (%d/%d)", st.buttonText, i+1, st.clicks),
			chromedp.WaitVisible(xpath, chromedp.BySearch),
			chromedp.Evaluate(scrollToBottomJS, nil),
			chromedp.Click(xpath, chromedp.BySearch),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
