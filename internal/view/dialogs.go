package view

import (
	"strconv"

	"github.com/merute/welcome/internal/models"
	"github.com/merute/welcome/internal/partner"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Partner form routes.
const (
	PartnerSubmitPath  = "/partner/submit"
	PartnerClosePath   = "/partner/close"
	PartnerContactPath = "/partner/contact"
)

// UploadPath is where a side's file is posted.
func UploadPath(side partner.Side) string { return "/partner/uploads/" + string(side) }

// RemovePath clears a side's image.
func RemovePath(side partner.Side) string { return UploadPath(side) + "/remove" }

// GenerationField names the hidden input carrying a slot's input handle.
func GenerationField(side partner.Side) string { return "generation_" + string(side) }

const (
	panelClass   = "relative z-10 w-full sm:max-w-md rounded-lg bg-white p-6 shadow-lg"
	overlayClass = "absolute inset-0 w-full h-full bg-black/40 backdrop-blur-sm cursor-default"
	closeClass   = "absolute right-4 top-4 rounded-sm opacity-70 hover:opacity-100"
	inputClass   = "w-full rounded-md border px-3 py-2 bg-white/50 backdrop-blur-sm"
)

func dialogShell(id, titleID string, children ...g.Node) g.Node {
	return Div(ID(id), Role("dialog"), Aria("modal", "true"), Aria("labelledby", titleID),
		Class("fixed inset-0 z-50 flex items-center justify-center p-4"),
		g.Group(children),
	)
}

func loginDialog() g.Node {
	return dialogShell("login-dialog", "login-title",
		A(Href("/"), Class(overlayClass), Aria("label", "Fermer")),
		Div(Class(panelClass),
			A(Href("/"), Class(closeClass), Aria("label", "Fermer"), g.Text("×")),
			H2(ID("login-title"), Class("text-center text-lg font-semibold"), g.Text("Scanner pour vous connecter")),
			Div(Class("flex flex-col items-center space-y-6 py-4"),
				P(Class("text-gray-600 text-sm text-center"),
					g.Text("Ouvrez l'application Merute Pay et scannez ce QR code pour vous connecter à votre compte"),
				),
				Div(Class("bg-white p-6 rounded-xl border-2 border-dashed border-gray-200 shadow-inner"),
					Img(ID("login-qr"), Src(QRSrc), Alt("QR code de connexion"), Width("200"), Height("200")),
				),
				Div(Class("flex items-center gap-2 text-sm text-gray-500"),
					Div(Class("h-1.5 w-1.5 bg-green-500 rounded-full animate-pulse")),
					P(Class("font-medium"), g.Text("Actualisation automatique toutes les 5 minutes")),
				),
			),
		),
	)
}

func partnerDialog(v partner.View) g.Node {
	submitLabel := "Envoyer ma demande"
	if v.Submitting {
		submitLabel = "Envoi en cours..."
	}

	return dialogShell("partner-dialog", "partner-title",
		Button(Type("submit"), g.Attr("form", "partner-close"), Class(overlayClass), Aria("label", "Fermer")),
		Div(Class(panelClass),
			Button(Type("submit"), g.Attr("form", "partner-close"), Class(closeClass), Aria("label", "Fermer"), g.Text("×")),
			H2(ID("partner-title"), Class("text-lg font-semibold"), g.Text("Devenir partenaire Merute Pay")),
			Form(ID("partner-form"), Method("post"), Action(PartnerSubmitPath),
				g.Attr("enctype", "multipart/form-data"), g.Attr("novalidate"),
				Class("space-y-4 py-4"),
				textField(models.FieldEmail, "Email", "votre@email.com", v.Email, v.Errors),
				textField(models.FieldPhone, "Numéro de téléphone", "+225 0700000000", v.Phone, v.Errors),
				Div(Class("flex justify-end"),
					Button(Type("submit"), g.Attr("formaction", PartnerContactPath), g.Attr("formenctype", "application/x-www-form-urlencoded"),
						Class("text-xs underline text-gray-600"), g.Text("Vérifier mes coordonnées"),
					),
				),
				Div(Class("space-y-4"),
					Label(g.Text("Pièce d'identité (Recto/Verso)")),
					Div(Class("grid grid-cols-2 gap-4"),
						g.Map(partner.Sides, func(side partner.Side) g.Node { return uploadSlot(side, v) }),
					),
					P(Class("text-xs text-gray-500 text-center"), g.Text("Format accepté : JPG, PNG (max 5MB)")),
				),
				Button(Type("submit"), ID("partner-submit"), Class("w-full rounded-md bg-primary px-4 py-2 text-white disabled:opacity-50"),
					g.If(!v.CanSubmit(), Disabled()),
					g.Text(submitLabel),
				),
			),
			Form(ID("partner-close"), Method("post"), Action(PartnerClosePath)),
			g.Map(partner.Sides, func(side partner.Side) g.Node {
				return Form(ID("remove-"+string(side)), Method("post"), Action(RemovePath(side)))
			}),
		),
	)
}

func textField(name, label, placeholder, value string, errs map[string]string) g.Node {
	msg := errs[name]
	return Div(Class("space-y-2"),
		Label(For(name), Class("text-sm font-medium"), g.Text(label)),
		Input(ID(name), Name(name), Type("text"), Placeholder(placeholder), Value(value), Class(inputClass),
			g.If(msg != "", Aria("invalid", "true")),
		),
		fieldError(name, msg),
	)
}

func fieldError(name, msg string) g.Node {
	if msg == "" {
		return nil
	}
	return P(ID(name+"-error"), Class("text-sm font-medium text-red-500"), g.Text(msg))
}

var sideLabels = map[partner.Side]string{partner.Recto: "Recto", partner.Verso: "Verso"}

// uploadSlot renders one identity card face. The file input's id carries
// the slot generation, so a removal or reset always yields a fresh input.
func uploadSlot(side partner.Side, v partner.View) g.Node {
	field := side.Field()
	label := sideLabels[side]
	gen := strconv.FormatUint(v.InputKeys[side], 10)
	preview := v.Previews[side]

	return Div(ID("slot-"+string(side)), Class("space-y-2"),
		Div(Class("relative border-2 border-dashed rounded-lg p-4 hover:bg-white/5 transition-colors group"),
			g.If(preview != "",
				Div(Class("relative"),
					Img(Src(preview), Alt(label+" CNI"), Class("w-full h-32 object-cover rounded-lg")),
					Button(Type("submit"), g.Attr("form", "remove-"+string(side)),
						Class("absolute -top-2 -right-2 bg-red-500 text-white rounded-full p-1"),
						Aria("label", "Supprimer le "+label), g.Text("×"),
					),
				),
			),
			g.If(preview == "",
				Div(Class("flex flex-col items-center gap-2 text-sm text-gray-600"), Span(g.Text(label))),
			),
			Input(ID(field+"-"+gen), Name(field), Type("file"), g.Attr("accept", "image/*"), Class("mt-2 w-full text-xs")),
			Input(Type("hidden"), Name(GenerationField(side)), Value(gen)),
			Button(Type("submit"), g.Attr("formaction", UploadPath(side)), Class("mt-2 w-full text-xs underline"),
				g.Text("Téléverser"),
			),
		),
		fieldError(field, v.Errors[field]),
	)
}
