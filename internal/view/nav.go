package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const menuIcon = `<svg class="h-5 w-5" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M4 6h16M4 12h16M4 18h16"/></svg>`

func navbar(links []NavLink, menuOpen bool) g.Node {
	toggleHref, toggleLabel := "/?menu=open", "Ouvrir le menu"
	if menuOpen {
		toggleHref, toggleLabel = "/", "Fermer le menu"
	}

	return Nav(Class("h-16 md:h-20 border-b shadow-sm flex w-full relative z-20 bg-white/80 backdrop-blur-md"),
		Div(Class("w-full px-4 md:w-10/12 items-center flex mx-auto"),
			Div(Class("flex w-full md:w-2/12 h-full items-center"),
				Img(Src(LogoSrc), Alt(""), Class("w-8 h-8 md:w-10 md:h-10")),
			),
			Div(Class("hidden md:flex w-10/12 h-full space-x-8 items-center justify-end"),
				g.Map(links, func(l NavLink) g.Node {
					return A(Class("text-[13px] font-medium hover:text-primary transition-colors"), Href(l.Href),
						Span(Class("uppercase tracking-wide"), g.Text(l.Title)),
					)
				}),
			),
			Div(Class("flex md:hidden ml-auto"),
				A(Href(toggleHref), Class("p-2 z-50 relative"), Aria("label", toggleLabel), g.Raw(menuIcon)),
			),
		),
	)
}

// mobileMenu is the slide-in panel. Following any link, or the overlay,
// leaves the menu closed on the next page.
func mobileMenu(links []NavLink, open bool) g.Node {
	position := "-translate-x-full"
	if open {
		position = "translate-x-0"
	}

	return g.Group{
		Div(Class("fixed inset-y-0 left-0 w-64 bg-white/90 backdrop-blur-md shadow-lg transform transition-transform duration-300 ease-in-out z-40 "+position),
			ID("mobile-menu"),
			Div(Class("px-4 py-20 space-y-2"),
				g.Map(links, func(l NavLink) g.Node {
					return A(Class("block text-[13px] hover:text-primary transition-colors py-2"), Href(l.Href),
						Span(Class("uppercase tracking-wide font-medium"), g.Text(l.Title)),
					)
				}),
			),
		),
		g.If(open,
			A(Href("/"), ID("menu-overlay"), Aria("label", "Fermer le menu"),
				Class("fixed inset-0 bg-black/20 backdrop-blur-sm z-30 md:hidden"),
			),
		),
	}
}
