package repositories

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/database"
	"github.com/rgrams-coder/mmles/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// ProfileUpdate - owner-editable fields of a user.
type ProfileUpdate struct {
	Name            string
	Email           string
	Phone           string
	Status          models.MemberCategory
	CategoryDetails models.CategoryDetails
}

// LibraryGrant - state written by a verified library payment.
type LibraryGrant struct {
	PaymentID string
	PaidAt    time.Time
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	// ExistsByUsernameOrEmail is the registration pre-check.
	ExistsByUsernameOrEmail(db *gorm.DB, username, email string) (bool, error)
	UpdateProfile(db *gorm.DB, userID string, upd ProfileUpdate) error
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	SetLibraryPaymentStatus(db *gorm.DB, userID string, status models.LibraryPaymentStatus) error
	GrantLibraryAccess(db *gorm.DB, userID string, grant LibraryGrant) error
	// ResetStaleLibraryPending moves users left pending since before back to none.
	ResetStaleLibraryPending(db *gorm.DB, before time.Time) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// Create inserts user; a unique index violation comes back as ErrUserAlreadyExists.
func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.findOne(db, "id = ?", id)
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	return r.findOne(db, "username = ?", username)
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.findOne(db, "email = ?", email)
}

func (r *UserRepositoryImpl) findOne(db *gorm.DB, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := db.Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ExistsByUsername(db *gorm.DB, username string) (bool, error) {
	return r.exists(db, "username = ?", username)
}

func (r *UserRepositoryImpl) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	return r.exists(db, "email = ?", email)
}

func (r *UserRepositoryImpl) ExistsByUsernameOrEmail(db *gorm.DB, username, email string) (bool, error) {
	return r.exists(db, "username = ? OR email = ?", username, email)
}

func (r *UserRepositoryImpl) exists(db *gorm.DB, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile writes the owner-editable fields. An email collision comes back as
// ErrUserAlreadyExists.
func (r *UserRepositoryImpl) UpdateProfile(db *gorm.DB, userID string, upd ProfileUpdate) error {
	err := r.updateColumns(db, userID, map[string]interface{}{
		"name":             upd.Name,
		"email":            upd.Email,
		"phone":            upd.Phone,
		"status":           upd.Status,
		"category_details": datatypes.NewJSONType(upd.CategoryDetails),
	})
	if err != nil && database.IsDuplicateKey(err) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"password_hash": passwordHash,
	})
}

func (r *UserRepositoryImpl) SetLibraryPaymentStatus(db *gorm.DB, userID string, status models.LibraryPaymentStatus) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"library_payment_status": status,
	})
}

// GrantLibraryAccess is a single UPDATE, so replays reapply the same state.
func (r *UserRepositoryImpl) GrantLibraryAccess(db *gorm.DB, userID string, grant LibraryGrant) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"has_library_access":     true,
		"library_payment_status": models.LibraryPaymentCompleted,
		"library_payment_id":     grant.PaymentID,
		"library_paid_at":        grant.PaidAt,
	})
}

func (r *UserRepositoryImpl) ResetStaleLibraryPending(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Model(&models.User{}).
		Where("library_payment_status = ? AND has_library_access = ? AND updated_at < ?",
			models.LibraryPaymentPending, false, before).
		Update("library_payment_status", models.LibraryPaymentNone)
	return res.RowsAffected, res.Error
}

// updateColumns does not treat zero affected rows as not found: MySQL reports 0 for
// unchanged rows. Callers load the user first.
func (r *UserRepositoryImpl) updateColumns(db *gorm.DB, userID string, values map[string]interface{}) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Updates(values).Error
}
