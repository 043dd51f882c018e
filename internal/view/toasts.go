package view

import (
	"github.com/merute/welcome/internal/toast"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

var toastClasses = map[toast.Kind]string{
	toast.Success: "border-green-500 bg-green-50 text-green-900",
	toast.Failure: "border-red-500 bg-red-50 text-red-900",
}

func toasts(items []toast.Toast) g.Node {
	if len(items) == 0 {
		return nil
	}
	return Div(ID("toasts"), Role("status"), Aria("live", "polite"),
		Class("fixed bottom-4 right-4 z-[60] flex flex-col gap-2"),
		g.Map(items, func(t toast.Toast) g.Node {
			return Div(Class("rounded-md border-l-4 px-4 py-3 shadow-md "+toastClasses[t.Kind]),
				Data("kind", string(t.Kind)),
				g.Text(t.Message),
			)
		}),
	)
}
