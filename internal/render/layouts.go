package render

// Layout is a printable newspaper page template. Markup is trusted; only the
// placeholder values are sanitized.
type Layout struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	markup      string
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{title}}</title>
<link rel="stylesheet" href="/static/gazette.css">
</head>
`

var layouts = []Layout{
	{
		ID:          "classic",
		Name:        "Classic Front Page",
		Description: "Masthead, photo above the fold, single column story.",
		markup: pageHead + `<body class="gazette gazette-classic">
<header class="masthead"><h1>The Family Gazette</h1><p class="dateline">{{dateline}}</p></header>
<article>
<h2 class="headline">{{headline}}</h2>
<h3 class="subheadline">{{subheadline}}</h3>
<figure class="photo">{{image}}</figure>
<p class="byline">{{byline}}</p>
<div class="body">{{body}}</div>
<blockquote class="quote">{{quote}}</blockquote>
<footer class="tags">{{tags}}</footer>
</article>
</body>
</html>
`,
	},
	{
		ID:          "tabloid",
		Name:        "Tabloid Splash",
		Description: "Oversized headline with the photo as the hero image.",
		markup: pageHead + `<body class="gazette gazette-tabloid">
<h1 class="headline splash">{{headline}}</h1>
<figure class="photo hero">{{image}}</figure>
<h2 class="subheadline">{{subheadline}}</h2>
<p class="meta"><span class="byline">{{byline}}</span> | <span class="dateline">{{dateline}}</span></p>
<div class="body">{{body}}</div>
<aside class="quote">{{quote}}</aside>
<footer class="tags">{{tags}}</footer>
</body>
</html>
`,
	},
	{
		ID:          "broadsheet",
		Name:        "Broadsheet Columns",
		Description: "Two column layout with a pull quote beside the photo.",
		markup: pageHead + `<body class="gazette gazette-broadsheet">
<header class="masthead"><h1>The Family Gazette</h1><p class="edition">{{tags}}</p></header>
<h2 class="headline">{{headline}}</h2>
<h3 class="subheadline">{{subheadline}}</h3>
<div class="columns">
<section class="column">
<p class="dateline">{{dateline}}</p>
<p class="byline">{{byline}}</p>
<div class="body">{{body}}</div>
</section>
<section class="column">
<figure class="photo">{{image}}</figure>
<blockquote class="pull-quote">{{quote}}</blockquote>
</section>
</div>
</body>
</html>
`,
	},
}

// DefaultLayout is used when no layout is requested
const DefaultLayout = "classic"

// Layouts lists the available layouts
func Layouts() []Layout {
	return append([]Layout(nil), layouts...)
}

// LookupLayout finds a layout by id
func LookupLayout(id string) (Layout, bool) {
	for _, l := range layouts {
		if l.ID == id {
			return l, true
		}
	}
	return Layout{}, false
}

// IsValidLayout reports whether id names a known layout
func IsValidLayout(id string) bool {
	_, ok := LookupLayout(id)
	return ok
}
