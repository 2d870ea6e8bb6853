package html

import (
	"io"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"

	"github.com/recera/vangochart/pkg/vango/vdom"
)

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<main id="chart">{{.Chart}}</main>
{{if .Live}}<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/live");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "CHART") {
      document.getElementById("chart").innerHTML = msg.svg;
    }
  };
})();
</script>{{end}}
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Page describes an HTML document wrapping one chart
type Page struct {
	Title string
	Chart *vdom.VNode
	// Live adds a websocket client that swaps in re-rendered charts
	Live bool
}

// WriteDocument renders p as a complete HTML document. The chart markup is
// produced by the Applier, which escapes all text and attribute values.
func WriteDocument(w io.Writer, p Page) error {
	markup, err := RenderToString(p.Chart)
	if err != nil {
		return err
	}

	return pageTemplate.Execute(w, struct {
		Title string
		Chart safehtml.HTML
		Live  bool
	}{
		Title: p.Title,
		Chart: uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(markup),
		Live:  p.Live,
	})
}
