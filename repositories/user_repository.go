package repositories

import (
	"context"
	"fmt"

	"electronics-store/models"
)

const userColumns = `id, username, email, password, first_name, last_name, role, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		user.Username, user.Email, user.Password, user.FirstName, user.LastName, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return translate(err, "username")
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any, resource string) (*models.User, error) {
	user := &models.User{}
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, resource)
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = $1", username, "user "+username)
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	return r.findOne(ctx, "id = $1", id, fmt.Sprintf("user %d", id))
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) UpdateNames(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET first_name = $1, last_name = $2, email = $3, updated_at = NOW()
	          WHERE id = $4 RETURNING updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query, user.FirstName, user.LastName, user.Email, user.ID).Scan(&user.UpdatedAt)
	return translate(err, fmt.Sprintf("user %d", user.ID))
}

func (r *UserRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, phone_number, address, profile_picture)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		profile.UserID, profile.PhoneNumber, profile.Address, profile.ProfilePicture,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	return translate(err, "profile")
}

func (r *UserRepository) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, phone_number, address, profile_picture, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	profile := &models.UserProfile{}
	err := conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.PhoneNumber, &profile.Address,
		&profile.ProfilePicture, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("profile of user %d", userID))
	}
	return profile, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET phone_number = $1, address = $2, profile_picture = $3, updated_at = NOW()
		WHERE user_id = $4
	`
	tag, err := conn(ctx, r.db).Exec(ctx, query,
		profile.PhoneNumber, profile.Address, profile.ProfilePicture, profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundf("profile of user %d", profile.UserID)
	}
	return nil
}

func (r *UserRepository) GetUserWithProfile(ctx context.Context, userID int) (*models.UserWithProfile, error) {
	query := `
		SELECT
			u.id, u.username, u.email, u.first_name, u.last_name, u.role, u.created_at,
			COALESCE(up.phone_number, ''),
			COALESCE(up.address, ''),
			COALESCE(up.profile_picture, '')
		FROM users u
		LEFT JOIN user_profiles up ON u.id = up.user_id
		WHERE u.id = $1
	`
	user := &models.UserWithProfile{}
	err := conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.Role,
		&user.CreatedAt, &user.PhoneNumber, &user.Address, &user.ProfilePicture,
	)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("user %d", userID))
	}
	return user, nil
}
