// Package auth resuelve la identidad del usuario de la consola: login contra la API,
// persistencia del token y cierre de sesión (manual o por 401).
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/notify"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/domain/repository"
	"github.com/jhoicas/inventario-console/pkg/jwt"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// SessionUseCase login, logout y consultas de identidad.
// Implementa restapi.TokenSource a través de Token().
type SessionUseCase struct {
	repo     repository.AuthRepository
	storage  repository.SessionStorage
	notifier notify.Publisher
	log      *logger.Logger
	now      func() time.Time

	mu         sync.Mutex
	redirected bool
	onRedirect func()
	onEnd      []func()
}

// Option configura el caso de uso.
type Option func(*SessionUseCase)

// WithClock reemplaza el reloj usado para validar exp (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *SessionUseCase) { uc.now = now }
}

// WithRedirect registra la acción de redirigir a la pantalla de login.
func WithRedirect(fn func()) Option {
	return func(uc *SessionUseCase) { uc.onRedirect = fn }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(uc *SessionUseCase) { uc.log = l }
}

// NewSessionUseCase construye el caso de uso de sesión.
func NewSessionUseCase(repo repository.AuthRepository, storage repository.SessionStorage, notifier notify.Publisher, opts ...Option) *SessionUseCase {
	uc := &SessionUseCase{
		repo:     repo,
		storage:  storage,
		notifier: notifier,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// OnSessionEnd registra un hook que corre en cada logout o 401 (liberar caches de la sesión).
func (uc *SessionUseCase) OnSessionEnd(fn func()) {
	uc.mu.Lock()
	uc.onEnd = append(uc.onEnd, fn)
	uc.mu.Unlock()
}

// Login valida las credenciales contra la API y persiste token, nombre, id de usuario
// y una credencial nueva para el navegador (Session.ID). Si las credenciales son
// rechazadas la sesión vigente queda intacta; si se acepta y había otra sesión,
// corren los hooks de fin de sesión antes de guardar la nueva.
func (uc *SessionUseCase) Login(ctx context.Context, in dto.LoginRequest) (*entity.Session, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	token, userName, err := uc.repo.Login(ctx, entity.Credentials{UserName: in.UserName, Password: in.Password})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			uc.publish("Usuario o contraseña incorrectos", notify.Error)
			return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
		}
		if !domain.AlreadyNotified(err) {
			uc.publish("No se pudo iniciar sesión", notify.Error)
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if _, err := jwt.Decode(token); err != nil {
		uc.publish("El servidor devolvió un token inválido", notify.Error)
		return nil, fmt.Errorf("login: %w", domain.ErrMalformedToken)
	}
	if userName == "" {
		userName = jwt.Name(token)
	}
	if userName == "" {
		userName = in.UserName
	}

	replaced := uc.Token() != ""
	if err := uc.clear(); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if replaced {
		uc.runEndHooks()
	}

	sess := &entity.Session{ID: uuid.NewString(), Token: token, DisplayName: userName}
	values := map[string]string{
		repository.KeyToken:     token,
		repository.KeyUserName:  userName,
		repository.KeyConsoleID: sess.ID,
	}
	if id, ok := jwt.UserID(token); ok {
		sess.UserID = &id
		values[repository.KeyUserID] = strconv.FormatInt(id, 10)
	}
	for k, v := range values {
		if err := uc.storage.Set(k, v); err != nil {
			_ = uc.clear()
			return nil, fmt.Errorf("login: %w", err)
		}
	}

	uc.mu.Lock()
	uc.redirected = false
	uc.mu.Unlock()

	uc.log.Info().Str("user", userName).Bool("replaced", replaced).Msg("sesión iniciada")
	uc.publish("Bienvenido, "+userName, notify.Success)
	return sess, nil
}

// Logout borra todos los campos persistidos de la sesión.
func (uc *SessionUseCase) Logout() error {
	if err := uc.clear(); err != nil {
		return err
	}
	uc.runEndHooks()
	uc.log.Info().Msg("sesión cerrada")
	return nil
}

// HandleUnauthorized reacciona a un 401: limpia la sesión y redirige al login una sola vez
// por sesión, aunque lleguen varios 401 seguidos.
func (uc *SessionUseCase) HandleUnauthorized() {
	uc.mu.Lock()
	if uc.redirected {
		uc.mu.Unlock()
		return
	}
	uc.redirected = true
	redirect := uc.onRedirect
	uc.mu.Unlock()

	if err := uc.clear(); err != nil {
		uc.log.Error().Err(err).Msg("no se pudo limpiar la sesión tras 401")
	}
	uc.runEndHooks()
	uc.log.Warn().Msg("401 recibido: sesión cerrada")
	if redirect != nil {
		redirect()
	}
}

// IsAuthenticated decodifica exp del token guardado; cualquier fallo cuenta como no autenticado.
func (uc *SessionUseCase) IsAuthenticated() bool {
	return jwt.Valid(uc.Token(), uc.now())
}

// Owns indica si consoleID es la credencial emitida en el último login y la sesión sigue vigente.
func (uc *SessionUseCase) Owns(consoleID string) bool {
	if consoleID == "" || !uc.IsAuthenticated() {
		return false
	}
	v, ok, err := uc.storage.Get(repository.KeyConsoleID)
	if err != nil || !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v), []byte(consoleID)) == 1
}

// Token devuelve el token guardado o "".
func (uc *SessionUseCase) Token() string {
	v, ok, err := uc.storage.Get(repository.KeyToken)
	if err != nil {
		uc.log.Error().Err(err).Msg("leer token")
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// DisplayName nombre guardado al iniciar sesión.
func (uc *SessionUseCase) DisplayName() string {
	v, _, err := uc.storage.Get(repository.KeyUserName)
	if err != nil {
		return ""
	}
	return v
}

// CurrentUserID prefiere el valor guardado en el login; si falta, lo extrae del token.
func (uc *SessionUseCase) CurrentUserID() (int64, bool) {
	if v, ok, err := uc.storage.Get(repository.KeyUserID); err == nil && ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id, true
		}
	}
	token := uc.Token()
	if token == "" {
		return 0, false
	}
	return jwt.UserID(token)
}

// Current devuelve la sesión vigente o domain.ErrNoSession.
func (uc *SessionUseCase) Current() (*entity.Session, error) {
	if !uc.IsAuthenticated() {
		return nil, domain.ErrNoSession
	}
	sess := &entity.Session{Token: uc.Token(), DisplayName: uc.DisplayName()}
	if v, ok, err := uc.storage.Get(repository.KeyConsoleID); err == nil && ok {
		sess.ID = v
	}
	if id, ok := uc.CurrentUserID(); ok {
		sess.UserID = &id
	}
	return sess, nil
}

// Describe arma la respuesta de GET /console/session.
func (uc *SessionUseCase) Describe() dto.SessionResponse {
	sess, err := uc.Current()
	if err != nil {
		return dto.SessionResponse{Authenticated: false}
	}
	out := dto.SessionResponse{Authenticated: true, UserName: sess.DisplayName, UserID: sess.UserID}
	if exp, err := jwt.ExpiresAt(sess.Token); err == nil {
		out.ExpiresAt = &exp
	}
	return out
}

func (uc *SessionUseCase) clear() error {
	if err := uc.storage.Remove(repository.KeyToken, repository.KeyUserName, repository.KeyUserID, repository.KeyConsoleID); err != nil {
		return fmt.Errorf("limpiar sesión: %w", err)
	}
	return nil
}

func (uc *SessionUseCase) runEndHooks() {
	uc.mu.Lock()
	hooks := make([]func(), len(uc.onEnd))
	copy(hooks, uc.onEnd)
	uc.mu.Unlock()
	for _, h := range hooks {
		h()
	}
}

func (uc *SessionUseCase) publish(msg string, sev notify.Severity) {
	if uc.notifier != nil {
		uc.notifier.Notify(msg, sev)
	}
}
