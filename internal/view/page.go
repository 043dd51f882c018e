// Package view renders the welcome page with gomponents. Every interactive
// element is a link or a form so the page works without JavaScript.
package view

import (
	"io"

	"github.com/merute/welcome/internal/partner"
	"github.com/merute/welcome/internal/toast"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	DialogLogin   = "login"
	DialogPartner = "partner"
)

// Asset paths, served from the configured assets directory.
const (
	BackgroundSrc = "/pictures/login.webp"
	LogoSrc       = "/pictures/logo.png"
	QRSrc         = "/login/qr.png"
)

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Title string
	Href  string
}

// PageData is everything a render needs.
type PageData struct {
	Links    []NavLink
	MenuOpen bool
	Dialog   string
	Partner  partner.View
	Toasts   []toast.Toast
}

// Render writes the full HTML document.
func Render(w io.Writer, d PageData) error {
	return Page(d).Render(w)
}

// Page is the landing page document.
func Page(d PageData) g.Node {
	return Doctype(
		HTML(Lang("fr"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text("Merute Pay")),
				Link(Rel("icon"), Href(LogoSrc)),
			),
			Body(Class("antialiased"),
				Div(Class("flex flex-1 relative min-h-screen"),
					background(),
					Div(Class("flex flex-col min-h-screen w-full relative overflow-hidden"),
						navbar(d.Links, d.MenuOpen),
						mobileMenu(d.Links, d.MenuOpen),
						hero(),
					),
				),
				g.If(d.Dialog == DialogLogin, loginDialog()),
				g.If(d.Dialog == DialogPartner, partnerDialog(d.Partner)),
				toasts(d.Toasts),
			),
		),
	)
}

func background() g.Node {
	return Div(Class("fixed inset-0 z-0"),
		Img(Src(BackgroundSrc), Alt("Background"), Class("object-cover object-center w-full h-full")),
		Div(Class("absolute inset-0 backdrop-blur-2xl bg-gradient-to-b from-white/60 to-white/40")),
	)
}
