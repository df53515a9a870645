// Package sanitize wraps bluemonday policies behind the render.Sanitizer
// contract so component output can be cleaned before it leaves the renderer.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policy adapts a bluemonday policy to the renderer's Sanitizer seam.
type Policy struct {
	policy *bluemonday.Policy
}

// Sanitize runs the wrapped policy over the rendered markup.
func (p *Policy) Sanitize(html string) string {
	if p == nil || p.policy == nil {
		return html
	}
	return p.policy.Sanitize(html)
}

// Wrap adapts an existing bluemonday policy.
func Wrap(policy *bluemonday.Policy) *Policy {
	return &Policy{policy: policy}
}

var (
	ugcOnce   sync.Once
	ugcPolicy *Policy
)

// UGC returns a shared policy suitable for user-generated content: common
// formatting elements survive, scripts and event handlers do not.
func UGC() *Policy {
	ugcOnce.Do(func() {
		ugcPolicy = Wrap(bluemonday.UGCPolicy())
	})
	return ugcPolicy
}

// Strict strips every tag, leaving text content only.
func Strict() *Policy {
	return Wrap(bluemonday.StrictPolicy())
}

// Text strips tags and collapses the surrounding whitespace, for callers
// that want a plain-text projection of a rendered component.
func Text(html string) string {
	return strings.TrimSpace(Strict().Sanitize(html))
}
