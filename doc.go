// Package weather renders a depth-layered ambient weather effect (sunny,
// cloudy or rain) into one full-viewport container on [Ebitengine], and
// cross-fades between modes.
//
// # Quick start
//
// The host page is a [Document]: a retained node tree with style sheets, a
// frame scheduler and environment flags. Give it a container node named
// "weather-effect", then hand it to an [Engine]:
//
//	doc := weather.NewDocument(1280, 720)
//	doc.Root().AddChild(weather.NewContainer("weather-effect"))
//
//	eng := weather.NewEngine(doc, weather.WithStore(weather.NewFileStore("weather.toml", "theme-fuwari-weather")))
//	eng.Init()                  // persisted mode, else sunny; no fade
//	eng.SetMode(weather.ModeRain) // persist, fade out, rebuild, fade in
//
//	weather.Run(doc, weather.RunConfig{Title: "Weather", Width: 1280, Height: 720})
//
// # Modes
//
// Sunny draws a haze, a breathing sun disc and two glows, all animated by
// keyframes from the shared style sheet. Cloudy adds three bands of
// drifting clouds. Rain runs a [RainSimulation] over two canvases: a
// blurred back layer and a sharp front layer whose drops splash on the top
// edges of page panels (nodes classed "card-base", "btn-card" or
// "*float-panel*").
//
// # Transitions
//
// [Engine.SetMode] debounces: a request made before the previous one has
// rebuilt replaces it. At most one rain simulation is ever alive, and the
// container carries exactly one "weather-<mode>" class once a transition
// finishes.
//
// # Failure policy
//
// Engine operations never fail. A missing container turns them into no-ops,
// an unsupported canvas leaves the rain layer blank, and store errors are
// logged through [charmbracelet/log] and ignored.
//
// [Ebitengine]: https://ebitengine.org
// [charmbracelet/log]: https://github.com/charmbracelet/log
package weather
