package report

// viewerTemplate is the HTML page that hosts the trend charts.
const viewerTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #1c69d4;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    max-width: 1000px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.4rem; color: var(--accent); border-bottom: 3px solid var(--accent); padding-bottom: 8px; }
  .muted { color: var(--muted); font-size: 0.85rem; margin: 6px 0 18px; }
  figure { border: 1px solid var(--border); border-radius: 6px; margin-bottom: 20px; padding: 10px; }
  figcaption { font-weight: 600; margin-bottom: 6px; }
  svg { max-width: 100%; height: auto; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="muted">Ticker {{.Ticker}} &middot; generated {{.Generated}}</p>
{{range .Charts}}
<figure class="chart" data-series="{{join .Series}}">
  <figcaption>{{.Title}}</figcaption>
  {{svg .SVG}}
</figure>
{{end}}
</body>
</html>
`
