package slicer

import (
	"fmt"
	"time"
)

// fakePage is an in-memory Page for driving job logic without a browser.
type fakePage struct {
	ops       []string
	visible   map[string]bool
	waitErrs  map[string]error
	texts     map[string]string
	htmls     map[string]string
	navErr    error
	visibleFn func(selector string) (bool, error)
	clickFn   func(selector string)
}

func newFakePage() *fakePage {
	return &fakePage{
		visible:  make(map[string]bool),
		waitErrs: make(map[string]error),
		texts:    make(map[string]string),
		htmls:    make(map[string]string),
	}
}

func (p *fakePage) record(format string, args ...interface{}) {
	p.ops = append(p.ops, fmt.Sprintf(format, args...))
}

func (p *fakePage) Navigate(url string) error {
	p.record("navigate:%s", url)
	return p.navErr
}

func (p *fakePage) Fill(selector, value string) error {
	p.record("fill:%s=%s", selector, value)
	return nil
}

func (p *fakePage) SelectLabel(selector, label string) error {
	p.record("select:%s=%s", selector, label)
	return nil
}

func (p *fakePage) Check(selector string) error {
	p.record("check:%s", selector)
	return nil
}

func (p *fakePage) Click(selector string) error {
	p.record("click:%s", selector)
	if p.clickFn != nil {
		p.clickFn(selector)
	}
	return nil
}

func (p *fakePage) WaitVisible(selector string, timeout time.Duration) error {
	p.record("wait:%s", selector)
	return p.waitErrs[selector]
}

func (p *fakePage) WaitHidden(selector string, timeout time.Duration) error {
	return nil
}

func (p *fakePage) IsVisible(selector string) (bool, error) {
	if p.visibleFn != nil {
		return p.visibleFn(selector)
	}
	return p.visible[selector], nil
}

func (p *fakePage) TextContent(selector string) (string, error) {
	return p.texts[selector], nil
}

func (p *fakePage) InnerHTML(selector string) (string, error) {
	return p.htmls[selector], nil
}

// count returns how many recorded operations equal op.
func (p *fakePage) count(op string) int {
	n := 0
	for _, recorded := range p.ops {
		if recorded == op {
			n++
		}
	}
	return n
}

// indexOf returns the position of the first recorded operation equal to op,
// or -1.
func (p *fakePage) indexOf(op string) int {
	for i, recorded := range p.ops {
		if recorded == op {
			return i
		}
	}
	return -1
}

// fakeSession is a fakePage with teardown tracking for runner tests.
type fakeSession struct {
	*fakePage
	closeCount int
}

func (s *fakeSession) Close() error {
	s.closeCount++
	return nil
}
