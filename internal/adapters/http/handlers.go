package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"kingrun/internal/adapters/http/flash"
	"kingrun/internal/adapters/http/middleware"
	"kingrun/internal/adapters/storage/catalog"
	"kingrun/internal/application/listutil"
	"kingrun/internal/application/orchestrators"
	"kingrun/internal/application/projections"
	"kingrun/internal/application/session"
	domainEvent "kingrun/internal/domain/event"
	domainUser "kingrun/internal/domain/user"
)

// Auth form modes.
const (
	modeLogin    = "login"
	modeRegister = "register"
)

// authForm is the data for auth.html.
type authForm struct {
	Mode  string
	Name  string
	Email string
}

// IsLogin reports whether the form is in sign-in mode.
func (f authForm) IsLogin() bool { return f.Mode != modeRegister }

func normalizeMode(mode string) string {
	if mode == modeRegister {
		return modeRegister
	}
	return modeLogin
}

// handleLoading renders the neutral view shown while a session restores.
func (s *server) handleLoading(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "loading.html", page{Title: "Carregando"})
}

// handleNotFound renders the 404 view for unknown paths.
func (s *server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "not_found.html", page{Title: "Página não encontrada"})
}

// handleAuthForm handles GET /auth
func (s *server) handleAuthForm(w http.ResponseWriter, r *http.Request) {
	form := authForm{Mode: normalizeMode(r.URL.Query().Get("mode"))}
	s.render(w, r, http.StatusOK, "auth.html", page{Title: "Entrar", Data: &form})
}

// handleAuthSubmit handles POST /auth for both sign-in and sign-up.
func (s *server) handleAuthSubmit(w http.ResponseWriter, r *http.Request) {
	m, ok := middleware.ManagerFromContext(r.Context())
	if !ok {
		internalError(w, errors.New("no session manager in context"))
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := authForm{
		Mode:  normalizeMode(r.FormValue("Mode")),
		Name:  r.FormValue("Name"),
		Email: r.FormValue("Email"),
	}
	password := r.FormValue("Password")

	var err error
	if form.IsLogin() {
		err = m.Login(r.Context(), form.Email, password)
	} else {
		err = m.Register(r.Context(), form.Name, form.Email, password)
	}

	switch {
	case err == nil:
		toast := flash.Toast{Title: "Bem-vindo de volta!", Description: "Login realizado com sucesso.", Variant: flash.VariantSuccess}
		if !form.IsLogin() {
			toast = flash.Toast{Title: "Conta criada com sucesso!", Description: "Você já pode começar a usar o app.", Variant: flash.VariantSuccess}
		}
		s.redirectWithToast(w, r, "/", toast)
	case errors.Is(err, session.ErrPending):
		s.render(w, r, http.StatusConflict, "auth.html", page{
			Title: "Entrar",
			Data:  &form,
			Toast: &flash.Toast{Title: "Aguarde", Description: "Estamos processando seu acesso.", Variant: flash.VariantDefault},
		})
	case errors.Is(err, domainUser.ErrInvalidCredentials):
		s.renderAuthError(w, r, form, "Email ou senha inválidos")
	case errors.Is(err, domainUser.ErrInvalidRegistration):
		s.renderAuthError(w, r, form, "Por favor, preencha todos os campos corretamente")
	default:
		slog.Error("auth_event", "event", form.Mode+"_failed", "scope", m.Scope(), "error", err)
		s.renderAuthError(w, r, form, "Algo deu errado. Tente novamente.")
	}
}

func (s *server) renderAuthError(w http.ResponseWriter, r *http.Request, form authForm, msg string) {
	s.render(w, r, http.StatusUnprocessableEntity, "auth.html", page{
		Title: "Entrar",
		Data:  &form,
		Toast: &flash.Toast{Title: "Erro", Description: msg, Variant: flash.VariantDestructive},
	})
}

// handleLogout handles POST /logout
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if m, ok := middleware.ManagerFromContext(r.Context()); ok {
		m.Logout(r.Context())
	}
	s.redirectWithToast(w, r, "/auth", flash.Toast{Title: "Até logo!", Description: "Você saiu da sua conta."})
}

// currentUser returns the authenticated user; protected routes guarantee one exists.
func currentUser(r *http.Request) domainUser.User {
	m, ok := middleware.ManagerFromContext(r.Context())
	if !ok {
		return domainUser.User{}
	}
	u, _ := m.User()
	return u
}

// handleHome handles GET /
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetHome(r.Context(), projections.GetHomeQuery{
		User: currentUser(r),
		Now:  s.now(),
	}, projections.GetHomeDeps{
		EventStore:        s.deps.Catalog,
		AnnouncementStore: s.deps.Catalog,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "home.html", page{Title: "Início", Nav: "/", Data: &result})
}

// handleEvents handles GET /eventos
func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetEventList(r.Context(), projections.GetEventListQuery{
		Filter: r.URL.Query().Get("filter"),
	}, projections.GetEventListDeps{EventStore: s.deps.Catalog})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "events.html", page{Title: "Eventos", Nav: "/eventos", Data: &result})
}

// eventDetailView is the data for event_detail.html.
type eventDetailView struct {
	projections.GetEventDetailResult
	Distance     string
	Registration *domainEvent.Registration
}

// handleEventDetail handles GET /eventos/{id}
func (s *server) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	s.renderEventDetail(w, r, r.URL.Query().Get("distancia"), nil, nil)
}

// handleEventRegistration handles POST /eventos/{id}/inscricao.
// The confirmation is shown on this response only.
func (s *server) handleEventRegistration(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	distance := r.FormValue("Distance")

	result, err := orchestrators.ExecuteRegisterForEvent(r.Context(), orchestrators.RegisterForEventInput{
		EventID:  r.PathValue("id"),
		UserID:   currentUser(r).ID,
		Distance: distance,
	}, orchestrators.RegisterForEventDeps{EventStore: s.deps.Catalog, Now: s.now})

	var toast flash.Toast
	switch {
	case err == nil:
		slog.Info("event_registration", "event_id", result.Event.ID, "user_id", result.Registration.UserID, "distance", distance)
		toast = flash.Toast{
			Title:       "Inscrição confirmada! 🎉",
			Description: "Você está inscrito para " + result.Event.Name + " - " + distance,
			Variant:     flash.VariantSuccess,
		}
		s.renderEventDetail(w, r, distance, &result.Registration, &toast)
		return
	case errors.Is(err, catalog.ErrNotFound):
		s.renderEventDetail(w, r, "", nil, nil)
		return
	case errors.Is(err, domainEvent.ErrDistanceRequired):
		toast = flash.Toast{Title: "Selecione uma distância", Description: "Escolha a distância que deseja correr.", Variant: flash.VariantDestructive}
	case errors.Is(err, domainEvent.ErrDistanceNotOffered):
		toast = flash.Toast{Title: "Erro", Description: "Distância indisponível para este evento.", Variant: flash.VariantDestructive}
	case errors.Is(err, domainEvent.ErrRegistrationClosed):
		toast = flash.Toast{Title: "Erro", Description: "As inscrições para este evento estão encerradas.", Variant: flash.VariantDestructive}
	case errors.Is(err, domainEvent.ErrEventFull):
		toast = flash.Toast{Title: "Erro", Description: "Não há mais vagas para este evento.", Variant: flash.VariantDestructive}
	default:
		internalError(w, err)
		return
	}
	s.renderEventDetailStatus(w, r, http.StatusUnprocessableEntity, "", nil, &toast)
}

func (s *server) renderEventDetail(w http.ResponseWriter, r *http.Request, distance string, reg *domainEvent.Registration, toast *flash.Toast) {
	s.renderEventDetailStatus(w, r, http.StatusOK, distance, reg, toast)
}

func (s *server) renderEventDetailStatus(w http.ResponseWriter, r *http.Request, status int, distance string, reg *domainEvent.Registration, toast *flash.Toast) {
	result, err := projections.QueryGetEventDetail(r.Context(), projections.GetEventDetailQuery{
		EventID: r.PathValue("id"),
		Now:     s.now(),
	}, projections.GetEventDetailDeps{EventStore: s.deps.Catalog})
	if err != nil {
		internalError(w, err)
		return
	}
	if !result.Found {
		s.render(w, r, http.StatusNotFound, "event_detail.html", page{Title: "Evento não encontrado", Data: &eventDetailView{}})
		return
	}
	s.render(w, r, status, "event_detail.html", page{
		Title: result.Event.Name,
		Nav:   "/eventos",
		Toast: toast,
		Data: &eventDetailView{
			GetEventDetailResult: result,
			Distance:             strings.TrimSpace(distance),
			Registration:         reg,
		},
	})
}

// handleRanking handles GET /ranking
func (s *server) handleRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := projections.QueryGetRanking(r.Context(), projections.GetRankingQuery{
		Category: q.Get("categoria"),
		UserID:   currentUser(r).ID,
		Page:     listutil.ParsePageParams(q),
	}, projections.GetRankingDeps{RankingStore: s.deps.Catalog})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "ranking.html", page{Title: "Ranking", Nav: "/ranking", Data: &result})
}

// handleChallenges handles GET /desafios
func (s *server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetChallenges(r.Context(), projections.GetChallengesQuery{
		UserID: currentUser(r).ID,
		Now:    s.now(),
	}, projections.GetChallengesDeps{ChallengeStore: s.deps.Catalog})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "challenges.html", page{Title: "Desafios", Nav: "/desafios", Data: &result})
}

// handleProfile handles GET /perfil
func (s *server) handleProfile(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetProfile(r.Context(), projections.GetProfileQuery{
		User: currentUser(r),
	}, projections.GetProfileDeps{ResultStore: s.deps.Catalog})
	if err != nil {
		internalError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, "profile.html", page{Title: "Perfil", Nav: "/perfil", Data: &result})
}
