package chart

// ViewKind enumerates the renderer-facing views.
type ViewKind int

const (
	// Dashboard shows live stats for the latest sample.
	Dashboard ViewKind = iota
	// HistoryChart charts the full rolling history.
	HistoryChart
	// SessionDetail charts one completed charge session.
	SessionDetail
)

// View is the tagged variant the renderer dispatches on. Session is
// only meaningful for SessionDetail, as an index into the completed
// session list.
type View struct {
	Kind    ViewKind
	Session int
}

func DashboardView() View {
	return View{Kind: Dashboard}
}

func HistoryChartView() View {
	return View{Kind: HistoryChart}
}

func SessionDetailView(index int) View {
	return View{Kind: SessionDetail, Session: index}
}
