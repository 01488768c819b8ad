package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "courtside/database/repository/user"
	"courtside/models"
	"courtside/services/notification"
	"courtside/utils"
)

// sessionCacheTTL bounds how long a session-to-user mapping lives in
// Redis. Expired entries fall back to the sessionHash lookup in Mongo
// and are re-cached, so the TTL is an acceleration window, not the
// session lifetime.
const sessionCacheTTL = 24 * time.Hour

// DefaultAuthService implements AuthService on the user repository,
// the Redis auth cache and the FCM topic manager.
type DefaultAuthService struct {
	Repo   userRepo.UserRepository
	Topics notification.TopicManager
}

// NewDefaultAuthService constructs the account and session service.
func NewDefaultAuthService(repo userRepo.UserRepository, topics notification.TopicManager) *DefaultAuthService {
	return &DefaultAuthService{Repo: repo, Topics: topics}
}

func (s *DefaultAuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	user := &models.User{
		Name:  in.Name,
		Email: in.Email,
		Role:  models.RoleUser,
	}
	if err := user.Validate(); err != nil {
		return nil, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": err.Error()})
	}
	if len(in.Password) < 8 {
		return nil, utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": "password must be at least 8 characters"})
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewAPIError(utils.ErrUserExists, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DefaultAuthService) Login(ctx context.Context, email, password, fcmToken string) (*models.User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, "", utils.NewAPIError(utils.ErrInvalidCredentials, nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", utils.NewAPIError(utils.ErrInvalidCredentials, nil)
	}

	return s.openSession(ctx, user, fcmToken)
}

func (s *DefaultAuthService) RequestLoginCode(ctx context.Context, email string) (string, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", utils.NewAPIError(utils.ErrLoginError, nil)
	}
	code, err := utils.IssueLoginCode(email)
	if err != nil {
		return "", utils.NewAPIError(utils.ErrLoginError, nil)
	}
	return code, nil
}

func (s *DefaultAuthService) LoginWithCode(ctx context.Context, email, code, fcmToken string) (*models.User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", utils.NewAPIError(utils.ErrInvalidCredentials, nil)
	}
	if err := utils.VerifyLoginCode(email, code); err != nil {
		return nil, "", utils.NewAPIError(utils.ErrInvalidCredentials, nil)
	}

	return s.openSession(ctx, user, fcmToken)
}

// openSession rotates the account onto a fresh session token: the old
// cache entry is evicted, the new hash persisted and cached.
func (s *DefaultAuthService) openSession(ctx context.Context, user *models.User, fcmToken string) (*models.User, string, error) {
	cache := utils.GetAuthCacheClient()

	if user.SessionHash != "" {
		if err := cache.Del(ctx, utils.AuthCachePrefix+user.SessionHash).Err(); err != nil {
			utils.GetLogger().Warn("auth: failed to evict rotated session", zap.Error(err))
		}
	}

	token := utils.NewSessionToken()
	user.SessionHash = utils.HashToken(token)
	user.AddFCMToken(fcmToken)

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	if err := cache.Set(ctx, utils.AuthCachePrefix+user.SessionHash, user.ID, sessionCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("auth: failed to cache session", zap.Error(err))
	}

	if fcmToken != "" {
		s.Topics.SubscribeUserTokens(ctx, user.Role, []string{fcmToken})
	}
	return user, token, nil
}

func (s *DefaultAuthService) Logout(ctx context.Context, actor Principal) error {
	if !actor.IsLoggedIn() {
		return nil
	}
	user := actor.User

	if user.SessionHash != "" {
		cache := utils.GetAuthCacheClient()
		if err := cache.Del(ctx, utils.AuthCachePrefix+user.SessionHash).Err(); err != nil {
			utils.GetLogger().Warn("auth: failed to evict session on logout", zap.Error(err))
		}
	}

	s.Topics.UnsubscribeUserTokens(ctx, user.Role, user.FCMTokens)

	user.SessionHash = ""
	user.FCMTokens = nil
	return s.Repo.Update(ctx, user)
}

func (s *DefaultAuthService) ResolveSession(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, nil
	}
	hash := utils.HashToken(token)
	cache := utils.GetAuthCacheClient()

	userID, err := cache.Get(ctx, utils.AuthCachePrefix+hash).Result()
	if err == nil && userID != "" {
		user, err := s.Repo.GetByID(ctx, userID)
		if err != nil {
			return Principal{}, err
		}
		// The cache may outlive a rotation; trust Mongo's hash.
		if user != nil && user.SessionHash == hash {
			return Principal{User: user}, nil
		}
	} else if err != redis.Nil {
		utils.GetLogger().Warn("auth: session cache lookup failed", zap.Error(err))
	}

	user, err := s.Repo.GetBySessionHash(ctx, hash)
	if err != nil {
		return Principal{}, err
	}
	if user == nil {
		return Principal{}, nil
	}

	if err := cache.Set(ctx, utils.AuthCachePrefix+hash, user.ID, sessionCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("auth: failed to re-cache session", zap.Error(err))
	}
	return Principal{User: user}, nil
}

func (s *DefaultAuthService) RegisterFCMToken(ctx context.Context, actor Principal, token string) error {
	if !actor.IsLoggedIn() {
		return nil
	}
	if token == "" {
		return utils.NewAPIError(utils.ErrInvalidData, map[string]any{"details": "missing token"})
	}

	user := actor.User
	before := len(user.FCMTokens)
	user.AddFCMToken(token)
	if len(user.FCMTokens) != before {
		if err := s.Repo.Update(ctx, user); err != nil {
			return err
		}
	}

	s.Topics.SubscribeUserTokens(ctx, user.Role, []string{token})
	return nil
}

func (s *DefaultAuthService) ListUsers(ctx context.Context, actor Principal) ([]models.SanitizedUser, error) {
	if !actor.IsAdmin() {
		return nil, utils.NewAPIError(utils.ErrUnauthorized, nil)
	}
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.SanitizedUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Sanitize())
	}
	return out, nil
}
