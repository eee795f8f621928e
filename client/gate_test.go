package client

import (
	"testing"
)

func TestGateLoadingBeforeSessionReady(t *testing.T) {
	session := NewSessionProvider(nil, &stubNavigator{}, &stubNotifier{})
	gate := NewAccessGate(session, &stubNotifier{})

	decision := gate.Check()
	if decision.State != GateLoading {
		t.Errorf("state = %v, want GateLoading", decision.State)
	}
	if decision.User != nil {
		t.Errorf("loading decision carries user %+v", decision.User)
	}
}

func TestGateRedirectsAnonymousWithNotice(t *testing.T) {
	session := NewSessionProvider(nil, &stubNavigator{}, &stubNotifier{})
	session.ready = true
	notify := &stubNotifier{}
	gate := NewAccessGate(session, notify)

	decision := gate.Check()
	if decision.State != GateRedirect {
		t.Fatalf("state = %v, want GateRedirect", decision.State)
	}
	if decision.RedirectTo != "/login" {
		t.Errorf("redirect to %q, want /login", decision.RedirectTo)
	}
	if notify.lastError() != "Please log in to access this page." {
		t.Errorf("notice = %q", notify.lastError())
	}
}

func TestGateAllowsLoggedInUser(t *testing.T) {
	session := NewSessionProvider(nil, &stubNavigator{}, &stubNotifier{})
	session.ready = true
	session.user = &User{ID: 7, Role: "admin"}
	notify := &stubNotifier{}
	gate := NewAccessGate(session, notify)

	decision := gate.Check()
	if decision.State != GateAllow {
		t.Fatalf("state = %v, want GateAllow", decision.State)
	}
	if decision.User == nil || decision.User.ID != 7 {
		t.Errorf("user = %+v", decision.User)
	}
	if len(notify.errors) != 0 {
		t.Errorf("allow produced notices: %v", notify.errors)
	}
}
