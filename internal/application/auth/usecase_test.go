package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de UserRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *memUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) UpdatePassword(id, passwordHash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Delete(id string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "almacen-api-test"
)

func newAuthUC() (*auth.AuthUseCase, *memUserRepo) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	return uc, repo
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_CreaConRolPorDefecto(t *testing.T) {
	uc, repo := newAuthUC()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "secreta123",
		Name:     "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@tienda.co", out.Email)
	assert.Equal(t, entity.RoleUser, out.Role, "sin rol explícito el registro asigna user")
	assert.Equal(t, "active", out.Status)

	stored := repo.byEmail["ana@tienda.co"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")),
		"el hash almacenado debe verificar contra la contraseña original")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "x1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "x2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolDesconocido_Rechazado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "secreta123",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "solo admin, seller y user son roles válidos")
}

// El registro es público: pedir un rol elevado no debe crear la cuenta ni
// escalar privilegios; los roles se asignan después vía administración.
func TestRegisterUser_RolElevado_Rechazado(t *testing.T) {
	uc, repo := newAuthUC()

	for _, role := range []string{entity.RoleAdmin, entity.RoleSeller} {
		_, err := uc.RegisterUser(dto.RegisterRequest{
			Email:    "intruso@tienda.co",
			Password: "secreta123",
			Role:     role,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden,
			"el registro público no debe aceptar rol %q", role)
	}
	assert.Empty(t, repo.byEmail, "ningún usuario debe persistirse")
}

func TestRegisterUser_RolUserExplicito_Aceptado(t *testing.T) {
	uc, _ := newAuthUC()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "secreta123",
		Role:     entity.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)
}

// failingUserRepo simula una BD caída en la consulta por email.
type failingUserRepo struct {
	*memUserRepo
	getByEmailErr error
}

func (r *failingUserRepo) GetByEmail(email string) (*entity.User, error) {
	return nil, r.getByEmailErr
}

// Un error de la BD al verificar el email debe propagarse, no tratarse como
// "email libre".
func TestRegisterUser_ErrorDeBD_SePropaga(t *testing.T) {
	errDB := errors.New("conexión perdida")
	repo := &failingUserRepo{memUserRepo: newMemUserRepo(), getByEmailErr: errDB}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreta123"})
	assert.ErrorIs(t, err, errDB, "el error de la consulta debe llegar al caller")
	assert.Empty(t, repo.byEmail, "no debe crearse el usuario")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenIncluyeUserIDYRol(t *testing.T) {
	uc, _ := newAuthUC()

	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "secreta123",
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
	assert.Equal(t, registered.ID, out.User.ID)
}

func TestLogin_PasswordIncorrecta_Unauthorized(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_NotFound(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResetPassword
// ──────────────────────────────────────────────────────────────────────────────

func TestResetPassword_PermiteLoginConNuevaPassword(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "vieja123"})
	require.NoError(t, err)

	require.NoError(t, uc.ResetPassword(dto.ResetPasswordRequest{
		Email:       "ana@tienda.co",
		NewPassword: "nueva456",
	}))

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "vieja123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la contraseña anterior deja de servir")

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "nueva456"})
	assert.NoError(t, err, "la nueva contraseña debe permitir el login")
}

func TestResetPassword_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUC()

	err := uc.ResetPassword(dto.ResetPasswordRequest{Email: "nadie@tienda.co", NewPassword: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
