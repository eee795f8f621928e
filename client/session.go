package client

import (
	"context"
)

// Navigator выполняет переходы между экранами приложения
type Navigator interface {
	Navigate(path string)
}

// Notifier показывает пользователю всплывающие уведомления
type Notifier interface {
	Success(message string)
	Error(message string)
}

// SessionProvider хранит текущего пользователя и признак готовности.
// Готовность выставляется ровно один раз после стартовой проверки сессии
// и дальше не сбрасывается, меняться может только пользователь.
// Вызовы не рассчитаны на параллельность: UI дергает их по одному.
type SessionProvider struct {
	api    *Client
	nav    Navigator
	notify Notifier

	user  *User
	ready bool
}

func NewSessionProvider(api *Client, nav Navigator, notify Notifier) *SessionProvider {
	return &SessionProvider{api: api, nav: nav, notify: notify}
}

// Start выполняет стартовую проверку сессии. Каким бы ни был результат,
// провайдер становится готовым: 401 означает «не залогинен», а не сбой.
func (s *SessionProvider) Start(ctx context.Context) {
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		user = nil
	}
	s.user = user
	s.ready = true
}

func (s *SessionProvider) Ready() bool    { return s.ready }
func (s *SessionProvider) User() *User    { return s.user }
func (s *SessionProvider) LoggedIn() bool { return s.user != nil }

// Login при успехе заменяет пользователя и уводит на главную,
// при ошибке оставляет прежнее состояние нетронутым
func (s *SessionProvider) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.notify.Error(err.Error())
		return err
	}
	s.user = resp.User
	s.notify.Success(resp.Message)
	s.nav.Navigate("/")
	return nil
}

func (s *SessionProvider) Register(ctx context.Context, input RegisterInput) error {
	resp, err := s.api.Register(ctx, input)
	if err != nil {
		s.notify.Error(err.Error())
		return err
	}
	s.user = resp.User
	s.notify.Success(resp.Message)
	s.nav.Navigate("/")
	return nil
}

func (s *SessionProvider) Logout(ctx context.Context) error {
	resp, err := s.api.Logout(ctx)
	if err != nil {
		s.notify.Error(err.Error())
		return err
	}
	s.user = nil
	s.notify.Success(resp.Message)
	s.nav.Navigate("/login")
	return nil
}
