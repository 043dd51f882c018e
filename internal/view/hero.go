package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	googlePlayIcon = `<svg class="w-5 h-5" viewBox="0 0 512 512"><path d="M99.617 8.057a50.191 50.191 0 00-38.815-6.713l230.932 230.933 74.846-74.846L99.617 8.057zM32.139 20.116c-6.441 8.563-10.148 19.077-10.148 30.199v411.358c0 11.123 3.708 21.636 10.148 30.199l235.877-235.877L32.139 20.116zM464.261 212.087l-67.266-37.637-81.544 81.544 81.548 81.548 67.273-37.64c16.117-9.03 25.738-25.442 25.738-43.908s-9.621-34.877-25.749-43.907zM291.733 279.711L60.815 510.629c3.786.891 7.639 1.371 11.492 1.371a50.275 50.275 0 0027.31-8.07l266.965-149.372-74.849-74.847z"/></svg>`
	appStoreIcon   = `<svg class="w-5 h-5" viewBox="0 0 305 305"><path d="M40.74 112.12c-25.79 44.74-9.4 112.65 19.12 153.82C74.09 286.52 88.5 305 108.24 305c.37 0 .74 0 1.13-.02 9.27-.37 15.97-3.23 22.45-5.99 7.27-3.1 14.8-6.3 26.6-6.3 11.22 0 18.39 3.1 25.31 6.1 6.83 2.95 13.87 6 24.26 5.81 22.23-.41 35.88-20.35 47.92-37.94a168.18 168.18 0 0021-43l.09-.28a2.5 2.5 0 00-1.33-3.06l-.18-.08c-3.92-1.6-38.26-16.84-38.62-58.36-.34-33.74 25.76-51.6 31-54.84l.24-.15a2.5 2.5 0 00.7-3.51c-18-26.37-45.62-30.34-56.73-30.82a50.04 50.04 0 00-4.95-.24c-13.06 0-25.56 4.93-35.61 8.9-6.94 2.73-12.93 5.09-17.06 5.09-4.64 0-10.67-2.4-17.65-5.16-9.33-3.7-19.9-7.9-31.1-7.9l-.79.01c-26.03.38-50.62 15.27-64.18 38.86z"/></svg>`
)

func hero() g.Node {
	return Section(Class("flex-grow flex items-center justify-center relative z-10 px-4"),
		Div(Class("max-w-6xl mx-auto w-full grid md:grid-cols-2 gap-8 md:gap-12 items-center"),
			Div(Class("relative aspect-square rounded-md md:aspect-[4/3] w-4/5 md:w-full mx-auto order-first md:order-last"),
				Img(Src(BackgroundSrc), Alt("Application mobile Merute Pay"), Class("object-contain drop-shadow-xl w-full h-full")),
			),
			Div(Class("flex flex-col items-center md:items-start text-center md:text-left space-y-6"),
				H1(Class("text-3xl md:text-4xl font-bold text-gray-900 leading-tight"),
					g.Text("Simplifiez vos paiements avec "),
					Span(Class("text-primary uppercase"), g.Text("Merute Pay")),
				),
				P(Class("text-gray-600 text-base md:text-lg max-w-xl leading-relaxed"),
					g.Text("Notre application sécurisée vous permet d'effectuer des paiements instantanés et de gérer votre argent en toute simplicité."),
				),
				Div(Class("flex flex-col sm:flex-row gap-3 w-full sm:w-auto"),
					A(Href("/?dialog="+DialogLogin), ID("open-login"),
						Class("inline-flex items-center justify-center px-6 py-2.5 text-sm font-medium text-white bg-primary hover:bg-primary/90 rounded-sm transition-colors"),
						g.Text("Connexion"),
					),
					A(Href("/?dialog="+DialogPartner), ID("open-partner"),
						Class("inline-flex border-2 border-neutral-700 items-center justify-center px-6 py-2.5 text-sm font-medium text-neutral-700 rounded-sm bg-white/50 hover:bg-white/70 backdrop-blur-sm transition-colors"),
						g.Text("Devenir partenaire"),
					),
				),
				badges(),
			),
		),
	)
}

// badges are decorative; the store listings do not exist yet.
func badges() g.Node {
	badge := func(icon, label string) g.Node {
		return Button(Type("button"),
			Class("inline-flex items-center px-4 py-2 bg-white/50 hover:bg-white/70 backdrop-blur-sm rounded-sm transition-colors"),
			g.Raw(icon),
			Span(Class("ml-2 text-sm font-medium"), g.Text(label)),
		)
	}
	return Div(Class("flex flex-wrap gap-3 justify-center md:justify-start pt-2"),
		badge(googlePlayIcon, "Google Play"),
		badge(appStoreIcon, "App Store"),
	)
}
