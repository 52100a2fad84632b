// Package browsertest provides an in-memory Page implementation for testing
// the heuristics without a real browser. It supports exactly the selector
// forms the production code uses: typed inputs, textarea/select/button/label
// tags, [role='button'], the .chip/.option classes, label:has(...) choice
// labels, and the two ancestor xpath walks.
package browsertest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/apply-agent/internal/browser"
)

// Node is one element in the fake DOM.
type Node struct {
	Tag     string
	Type    string // input "type" attribute
	Role    string // explicit role attribute
	Label   string // accessible label, matched by ByLabel
	Text    string // direct text content
	Classes []string

	Value    string // last filled value
	Files    string // last SetInputFiles path
	Clicked  bool
	Selected string // selected option text on a select

	// OnClick mutates the page when the node is clicked, e.g. revealing a
	// hidden file input or navigating past a guest wall.
	OnClick func(p *Page)

	Children []*Node
	parent   *Node
}

// InnerText returns the node's subtree text.
func (n *Node) InnerText() string {
	parts := []string{}
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	for _, c := range n.Children {
		if t := c.InnerText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (n *Node) hasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func (n *Node) walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.walk(visit)
	}
}

// Element builders used by tests.

// El builds a node with children.
func El(tag string, children ...*Node) *Node {
	n := &Node{Tag: tag, Children: children}
	for _, c := range children {
		c.parent = n
	}
	return n
}

// TextEl builds a text-bearing span.
func TextEl(text string) *Node { return &Node{Tag: "span", Text: text} }

// Input builds a typed input with an accessible label.
func Input(inputType, label string) *Node {
	return &Node{Tag: "input", Type: inputType, Label: label}
}

// Button builds a button with visible text.
func Button(text string) *Node { return &Node{Tag: "button", Text: text} }

// Option builds a select option.
func Option(text string) *Node { return &Node{Tag: "option", Text: text} }

// Select builds a select control with options.
func Select(label string, options ...*Node) *Node {
	n := El("select", options...)
	n.Label = label
	return n
}

// ChoiceLabel builds a label wrapping a radio input, the shape compliance
// questions use.
func ChoiceLabel(text string) *Node {
	return El("label", TextEl(text), Input("radio", ""))
}

// Page is the fake page. Mutations through locators act on the live tree.
type Page struct {
	Root        *Node
	CurrentURL  string
	GotoErr     error
	Screenshots []string
	Closed      bool
}

// NewPage builds a page rooted at a body node containing children.
func NewPage(url string, children ...*Node) *Page {
	return &Page{Root: El("body", children...), CurrentURL: url}
}

// Append adds nodes to the page root, for OnClick handlers that reveal
// controls.
func (p *Page) Append(nodes ...*Node) {
	for _, n := range nodes {
		n.parent = p.Root
		p.Root.Children = append(p.Root.Children, n)
	}
}

var _ browser.Page = (*Page)(nil)

// URL returns the page's current URL.
func (p *Page) URL() string { return p.CurrentURL }

// Goto records the navigation.
func (p *Page) Goto(url string) error {
	if p.GotoErr != nil {
		return p.GotoErr
	}
	p.CurrentURL = url
	return nil
}

// Screenshot records the requested path without writing a file.
func (p *Page) Screenshot(path string) error {
	p.Screenshots = append(p.Screenshots, path)
	return nil
}

// WaitFor is a no-op.
func (p *Page) WaitFor(time.Duration) {}

// Close marks the page closed.
func (p *Page) Close() error {
	p.Closed = true
	return nil
}

// Locator resolves a CSS selector list against the live tree.
func (p *Page) Locator(selector string) browser.Locator {
	return &fakeLocator{page: p, resolve: func() []*Node {
		return matchSubtree(p.Root, selector)
	}}
}

// ByLabel matches labelled controls.
func (p *Page) ByLabel(rx *regexp.Regexp) browser.Locator {
	return &fakeLocator{page: p, resolve: func() []*Node {
		var out []*Node
		p.Root.walk(func(n *Node) {
			if n.Label != "" && rx.MatchString(n.Label) {
				out = append(out, n)
			}
		})
		return out
	}}
}

// ByText matches nodes whose direct text matches rx.
func (p *Page) ByText(rx *regexp.Regexp) browser.Locator {
	return &fakeLocator{page: p, resolve: func() []*Node {
		var out []*Node
		p.Root.walk(func(n *Node) {
			if n.Text != "" && rx.MatchString(n.Text) {
				out = append(out, n)
			}
		})
		return out
	}}
}

// ByRole matches buttons by tag or explicit role; name filters on subtree
// text when non-nil.
func (p *Page) ByRole(role string, name *regexp.Regexp) browser.Locator {
	return &fakeLocator{page: p, resolve: func() []*Node {
		var out []*Node
		p.Root.walk(func(n *Node) {
			if n.Tag != role && n.Role != role {
				return
			}
			if name != nil && !name.MatchString(n.InnerText()) {
				return
			}
			out = append(out, n)
		})
		return out
	}}
}

// fakeLocator resolves lazily so locators observe tree mutations, matching
// live-locator semantics.
type fakeLocator struct {
	page    *Page
	resolve func() []*Node
}

func (l *fakeLocator) Count() (int, error) { return len(l.resolve()), nil }

func (l *fakeLocator) First() browser.Locator { return l.Nth(0) }

func (l *fakeLocator) Nth(i int) browser.Locator {
	return &fakeLocator{page: l.page, resolve: func() []*Node {
		nodes := l.resolve()
		if i < 0 || i >= len(nodes) {
			return nil
		}
		return nodes[i : i+1]
	}}
}

func (l *fakeLocator) first() (*Node, error) {
	nodes := l.resolve()
	if len(nodes) == 0 {
		return nil, fmt.Errorf("locator matched no elements")
	}
	return nodes[0], nil
}

func (l *fakeLocator) InnerText() (string, error) {
	n, err := l.first()
	if err != nil {
		return "", err
	}
	return n.InnerText(), nil
}

func (l *fakeLocator) Fill(value string) error {
	n, err := l.first()
	if err != nil {
		return err
	}
	if n.Tag != "input" && n.Tag != "textarea" {
		return fmt.Errorf("cannot fill a %s element", n.Tag)
	}
	n.Value = value
	return nil
}

func (l *fakeLocator) Click() error {
	n, err := l.first()
	if err != nil {
		return err
	}
	n.Clicked = true
	if n.OnClick != nil {
		n.OnClick(l.page)
	}
	return nil
}

func (l *fakeLocator) SetInputFiles(path string) error {
	n, err := l.first()
	if err != nil {
		return err
	}
	if n.Tag != "input" || n.Type != "file" {
		return fmt.Errorf("not a file input")
	}
	n.Files = path
	return nil
}

func (l *fakeLocator) SelectOptionByLabel(rx *regexp.Regexp) (bool, error) {
	n, err := l.first()
	if err != nil {
		return false, err
	}
	if n.Tag != "select" {
		return false, fmt.Errorf("not a select element")
	}
	for _, opt := range n.Children {
		if opt.Tag == "option" && rx.MatchString(opt.Text) {
			n.Selected = opt.Text
			return true, nil
		}
	}
	return false, nil
}

func (l *fakeLocator) Locator(selector string) browser.Locator {
	return &fakeLocator{page: l.page, resolve: func() []*Node {
		var out []*Node
		for _, n := range l.resolve() {
			if strings.HasPrefix(selector, "xpath=ancestor::") {
				if a := resolveAncestor(n, selector); a != nil {
					out = append(out, a)
				}
				continue
			}
			for _, c := range n.Children {
				out = append(out, matchSubtree(c, selector)...)
			}
		}
		return out
	}}
}

func (l *fakeLocator) FilterByText(rx *regexp.Regexp) browser.Locator {
	return &fakeLocator{page: l.page, resolve: func() []*Node {
		var out []*Node
		for _, n := range l.resolve() {
			if rx.MatchString(n.InnerText()) {
				out = append(out, n)
			}
		}
		return out
	}}
}

// resolveAncestor handles the two xpath walks the heuristics use:
// ancestor::label[1] and ancestor::*[self::div or ...][1].
func resolveAncestor(n *Node, selector string) *Node {
	wantLabel := strings.Contains(selector, "ancestor::label")
	for cur := n.parent; cur != nil; cur = cur.parent {
		if wantLabel {
			if cur.Tag == "label" {
				return cur
			}
			continue
		}
		switch cur.Tag {
		case "div", "section", "fieldset":
			return cur
		}
	}
	return nil
}

// matchSubtree collects descendants of root (root included) matching any
// alternative in the comma-separated selector list.
func matchSubtree(root *Node, selector string) []*Node {
	alts := strings.Split(selector, ",")
	var out []*Node
	root.walk(func(n *Node) {
		for _, alt := range alts {
			if matchSimple(n, strings.TrimSpace(alt)) {
				out = append(out, n)
				return
			}
		}
	})
	return out
}

var rxTypedInput = regexp.MustCompile(`^input\[type='([a-z]+)'\]$`)
var rxHasInput = regexp.MustCompile(`^label:has\(input\[type='([a-z]+)'\]\)$`)

// matchSimple evaluates one selector alternative against one node.
func matchSimple(n *Node, sel string) bool {
	switch {
	case sel == "":
		return false
	case sel == "[role='button']":
		return n.Role == "button"
	case strings.HasPrefix(sel, "."):
		return n.hasClass(sel[1:])
	}
	if m := rxTypedInput.FindStringSubmatch(sel); m != nil {
		return n.Tag == "input" && n.Type == m[1]
	}
	if m := rxHasInput.FindStringSubmatch(sel); m != nil {
		if n.Tag != "label" {
			return false
		}
		found := false
		n.walk(func(c *Node) {
			if c.Tag == "input" && c.Type == m[1] {
				found = true
			}
		})
		return found
	}
	// Bare tag name.
	return n.Tag == sel
}
