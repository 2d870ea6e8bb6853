package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/recera/vangochart/pkg/vango/vdom"
)

func TestElementBuilder_Rect(t *testing.T) {
	got := Rect().X(50).Y(34.5).Width(120).Height(20).Key("2").Build()

	want := &vdom.VNode{
		Kind: vdom.KindElement,
		Tag:  "rect",
		Props: vdom.Props{
			"x":      50.0,
			"y":      34.5,
			"width":  120.0,
			"height": 20.0,
			"key":    "2",
		},
		Kids: []vdom.VNode{},
		Key:  "2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestElementBuilder_Attributes(t *testing.T) {
	tests := []struct {
		name string
		b    *ElementBuilder
		attr string
		want string
	}{
		{"viewBox", SVG().ViewBox(0, 0, 600, 300), "viewBox", "0,0,600,300"},
		{"translate", G().Translate(0, 30), "transform", "translate(0,30)"},
		{"fractional translate", G().Translate(12.5, 0), "transform", "translate(12.5,0)"},
		{"dx", Text().Dx(-4), "dx", "-4"},
		{"dy", Text().Dy("0.35em"), "dy", "0.35em"},
		{"stroke opacity", Line().StrokeOpacity(0.1), "stroke-opacity", "0.1"},
		{"font size", G().FontSize(10), "font-size", "10"},
		{"data", G().Data("index", "3"), "data-index", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.b.Build().Attr(tt.attr)
			if !ok {
				t.Fatalf("attribute %q not set", tt.attr)
			}
			if got != tt.want {
				t.Errorf("Attr(%q) = %q, want %q", tt.attr, got, tt.want)
			}
		})
	}
}

func TestElementBuilder_Children(t *testing.T) {
	node := G().
		Child(Text().Content("Count →")).
		Children(nil, vdom.NewText("x")).
		Build()

	if len(node.Kids) != 2 {
		t.Fatalf("len(Kids) = %d, want 2", len(node.Kids))
	}
	if got := node.TextContent(); got != "Count →x" {
		t.Errorf("TextContent() = %q", got)
	}
}
