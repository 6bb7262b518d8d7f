package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/sevahub/internal/models"
	"github.com/example/sevahub/internal/utils"
)

// Register creates a new user record. Fails with ErrDuplicateEmail when
// another record already holds the email.
func (s *Store) Register(user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleGeneral
	}
	if user.Age == 0 && user.DOB != "" {
		user.Age = utils.AgeFromDOB(user.DOB)
	}

	s.users = append(s.users, &user)
	out := user
	return &out, nil
}

// Authenticate performs a single-shot lookup matching email and password
// exactly. No hashing, no session state: the matched record becomes the
// store's auth user and is returned to the caller, who is responsible for
// remembering it. The error never reveals which field was wrong.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			s.authUser = u
			out := *u
			return &out, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the current auth user.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authUser = nil
}

// UserByID returns a copy of the user with the given id.
func (s *Store) UserByID(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(id)
	if u == nil {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

// UserByEmail returns a copy of the user with the given email.
func (s *Store) UserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// ProfilePatch carries optional profile updates. Nil fields are left
// untouched; defaults live here at the merge site, not at read sites.
type ProfilePatch struct {
	Name      *string
	Phone     *string
	City      *string
	Pincode   *string
	DOB       *string
	Role      *models.Role
	BloodType *string
}

// UpdateProfile merges the patch into the user record.
func (s *Store) UpdateProfile(id uuid.UUID, patch ProfilePatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(id)
	if u == nil {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.City != nil {
		u.City = *patch.City
	}
	if patch.Pincode != nil {
		u.Pincode = *patch.Pincode
	}
	if patch.DOB != nil {
		u.DOB = *patch.DOB
		u.Age = utils.AgeFromDOB(u.DOB)
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.BloodType != nil {
		u.BloodType = *patch.BloodType
	}
	u.UpdatedAt = time.Now()

	out := *u
	return &out, nil
}

// AddSkill appends a volunteer skill if not already present.
func (s *Store) AddSkill(id uuid.UUID, skill string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(id)
	if u == nil {
		return nil, ErrNotFound
	}
	for _, existing := range u.Skills {
		if existing == skill {
			out := *u
			return &out, nil
		}
	}
	u.Skills = append(u.Skills, skill)
	u.UpdatedAt = time.Now()
	out := *u
	return &out, nil
}

// RemoveSkill deletes a volunteer skill, a no-op if absent.
func (s *Store) RemoveSkill(id uuid.UUID, skill string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(id)
	if u == nil {
		return nil, ErrNotFound
	}
	kept := u.Skills[:0]
	for _, existing := range u.Skills {
		if existing != skill {
			kept = append(kept, existing)
		}
	}
	u.Skills = kept
	u.UpdatedAt = time.Now()
	out := *u
	return &out, nil
}

// SetDonorProfile attaches the donor questionnaire to the user and mirrors
// its blood type onto the account.
func (s *Store) SetDonorProfile(id uuid.UUID, profile models.DonorProfile) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(id)
	if u == nil {
		return nil, ErrNotFound
	}
	p := profile
	u.DonorProfile = &p
	if p.BloodType != "" {
		u.BloodType = p.BloodType
	}
	u.UpdatedAt = time.Now()
	out := *u
	return &out, nil
}

// Users returns copies of all registered users.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out
}

func (s *Store) findUser(id uuid.UUID) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
