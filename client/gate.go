package client

type GateState int

const (
	// GateLoading — стартовая проверка сессии ещё не завершилась,
	// защищённый контент показывать рано
	GateLoading GateState = iota
	// GateRedirect — пользователь не залогинен, нужно увести на /login
	GateRedirect
	// GateAllow — доступ разрешён
	GateAllow
)

type GateDecision struct {
	State      GateState
	RedirectTo string
	User       *User
}

// AccessGate — чистый страж без собственного состояния
type AccessGate struct {
	session *SessionProvider
	notify  Notifier
}

func NewAccessGate(session *SessionProvider, notify Notifier) *AccessGate {
	return &AccessGate{session: session, notify: notify}
}

func (g *AccessGate) Check() GateDecision {
	if !g.session.Ready() {
		return GateDecision{State: GateLoading}
	}
	user := g.session.User()
	if user == nil {
		g.notify.Error("Please log in to access this page.")
		return GateDecision{State: GateRedirect, RedirectTo: "/login"}
	}
	return GateDecision{State: GateAllow, User: user}
}
