package page

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// IndexPage renders the single-page game client.
func IndexPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, indexHTML)
		return err
	})
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Devshop Tycoon</title>
	<link rel="stylesheet" href="/static/css/style.css">
</head>
<body>
	<header>
		<h1>Devshop Tycoon</h1>
		<div class="hud-stat">
			<span class="label">Money</span>
			<span id="money">$0</span>
			<span id="passive-income">($0 / sec)</span>
		</div>
		<div class="hud-stat">
			<span class="label">Energy</span>
			<span id="energy">0 / 0</span>
			<div class="bar"><div id="energy-bar"></div></div>
		</div>
		<div class="hud-stat">
			<span class="label">Level <span id="level">1</span></span>
			<span id="xp">0 / 100</span>
			<div class="bar"><div id="xp-bar"></div></div>
		</div>
		<div class="hud-stat">
			<span class="label">Junior Devs</span>
			<span id="junior-devs">0</span>
		</div>
		<button id="reset-button">Reset</button>
	</header>
	<main>
		<section>
			<h2>Contracts</h2>
			<div id="contracts-list"></div>
		</section>
		<section>
			<h2>Store</h2>
			<div id="store-list"></div>
		</section>
		<div id="feedback-log"></div>
	</main>
	<script src="/static/js/game.js"></script>
</body>
</html>
`
