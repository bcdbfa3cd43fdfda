package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/irsalhamdi/shop-api/core/claims"
	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/irsalhamdi/shop-api/database"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func storeErr(err error, op string) error {
	switch {
	case errors.Is(err, database.ErrDBNotFound):
		return failure.Wrap(failure.UserNotFound, "user not found", err)
	case errors.Is(err, database.ErrDBDuplicatedEntry):
		return failure.Wrap(failure.Conflict, "email already in use", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create hashes the password and stores a new user.
func Create(ctx context.Context, db sqlx.ExtContext, nu UserNew, now time.Time) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("generating password hash: %w", err)
	}

	role := nu.Role
	if role == "" {
		role = claims.RoleUser
	}

	usr := User{
		ID:           validate.GenerateID(),
		Name:         nu.Name,
		Email:        strings.ToLower(nu.Email),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	const q = `
	INSERT INTO users
		(user_id, name, email, role, password_hash, created_at, updated_at)
	VALUES
		(:user_id, :name, :email, :role, :password_hash, :created_at, :updated_at)`

	if _, err := database.NamedExecContext(ctx, db, q, usr); err != nil {
		return User{}, storeErr(err, "inserting user")
	}
	return usr, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (User, error) {
	in := struct {
		ID string `db:"user_id"`
	}{id}

	const q = `
	SELECT *
	FROM users
	WHERE user_id = :user_id`

	var usr User
	if err := database.NamedQueryStruct(ctx, db, q, in, &usr); err != nil {
		return User{}, storeErr(err, "selecting user")
	}
	return usr, nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (User, error) {
	in := struct {
		Email string `db:"email"`
	}{strings.ToLower(email)}

	const q = `
	SELECT *
	FROM users
	WHERE email = :email`

	var usr User
	if err := database.NamedQueryStruct(ctx, db, q, in, &usr); err != nil {
		return User{}, storeErr(err, "selecting user by email")
	}
	return usr, nil
}

func List(ctx context.Context, db sqlx.ExtContext, page, rows int) ([]User, error) {
	in := struct {
		Offset int `db:"offset"`
		Rows   int `db:"rows"`
	}{(page - 1) * rows, rows}

	const q = `
	SELECT *
	FROM users
	ORDER BY created_at, user_id
	OFFSET :offset ROWS FETCH NEXT :rows ROWS ONLY`

	var usrs []User
	if err := database.NamedQuerySlice(ctx, db, q, in, &usrs); err != nil {
		return nil, storeErr(err, "selecting users")
	}
	return usrs, nil
}

// Update applies the non nil fields of uu to usr and stores the result.
func Update(ctx context.Context, db sqlx.ExtContext, usr User, uu UserUp, now time.Time) (User, error) {
	if uu.Name != nil {
		usr.Name = *uu.Name
	}
	if uu.Email != nil {
		usr.Email = strings.ToLower(*uu.Email)
	}
	if uu.Role != nil {
		usr.Role = *uu.Role
	}
	if uu.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*uu.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("generating password hash: %w", err)
		}
		usr.PasswordHash = hash
	}
	usr.UpdatedAt = now

	const q = `
	UPDATE users SET
		name = :name,
		email = :email,
		role = :role,
		password_hash = :password_hash,
		updated_at = :updated_at
	WHERE user_id = :user_id`

	n, err := database.NamedExecContext(ctx, db, q, usr)
	if err != nil {
		return User{}, storeErr(err, "updating user")
	}
	if n == 0 {
		return User{}, failure.New(failure.UserNotFound, "user not found")
	}
	return usr, nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	in := struct {
		ID string `db:"user_id"`
	}{id}

	const q = `
	DELETE FROM users
	WHERE user_id = :user_id`

	n, err := database.NamedExecContext(ctx, db, q, in)
	if err != nil {
		return storeErr(err, "deleting user")
	}
	if n == 0 {
		return failure.New(failure.UserNotFound, "user not found")
	}
	return nil
}

// Authenticate checks the credentials and returns the matching user.
// Unknown emails and wrong passwords fail the same way.
func Authenticate(ctx context.Context, db sqlx.ExtContext, email, password string) (User, error) {
	usr, err := FetchByEmail(ctx, db, email)
	if err != nil {
		if failure.Is(err, failure.UserNotFound) {
			return User{}, failure.New(failure.InvalidCredentials, "invalid email or password")
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)); err != nil {
		return User{}, failure.New(failure.InvalidCredentials, "invalid email or password")
	}
	return usr, nil
}
