package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvAddr          = "NINJA_ADDR"
	EnvDBPath        = "NINJA_DB"
	EnvConfigPath    = "NINJA_CONFIG"
	EnvSessionSecret = "NINJA_SESSION_SECRET"
	EnvSessionTTL    = "NINJA_SESSION_TTL"
	EnvSecureCookie  = "NINJA_SESSION_SECURE_COOKIE"
	EnvBattleTTL     = "NINJA_BATTLE_TTL"
	EnvLogLevel      = "NINJA_LOG_LEVEL"

	// HTTP headers
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "na_session"

	// Gin context keys set by the auth middleware
	CtxAccountID   = "accountID"
	CtxDisplayName = "displayName"
)

// Routes used by the backend router
const (
	RouteAPIPrefix         = "/api"
	RouteFighters          = "/fighters"
	RouteWeapons           = "/weapons"
	RouteLeaderboard       = "/leaderboard"
	RouteVersion           = "/version"
	RouteSession           = "/session"
	RouteProfile           = "/profile"
	RouteProfileDifficulty = "/profile/difficulty"
	RouteProfileBattles    = "/profile/battles"
	RouteShopPurchase      = "/shop/purchase"
	RouteBattles           = "/battles"
	RouteBattleByID        = "/battles/:battleID"
	RouteBattleAction      = "/battles/:battleID/action"
	RouteBattleAdvance     = "/battles/:battleID/advance"
	RouteBattleAuto        = "/battles/:battleID/auto"
	RouteBattleStream      = "/battles/:battleID/stream"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidBattleID        = "Invalid battle ID"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedFetchFighters    = "Failed to fetch fighters"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchProfile     = "Failed to fetch profile"
	ErrFailedFetchHistory     = "Failed to fetch battle history"
	ErrFailedSaveProfile      = "Failed to save profile"
	ErrProfileNotFound        = "Profile not found"
	ErrUnknownFighter         = "Unknown fighter"
	ErrUnknownWeapon          = "Unknown weapon"
	ErrInvalidDifficulty      = "Difficulty must be between 1 and 10"
	ErrFailedStartBattle      = "Failed to start battle"
	ErrFailedResolveAction    = "Failed to resolve action"
	ErrNotYourTurn            = "It is not your turn"
	ErrSpecialNotCharged      = "Special attack is not charged yet"
	ErrBattleResolved         = "Battle is already resolved"
	ErrInvalidAction          = "Invalid action"
	ErrNothingPending         = "No pending step"
	ErrMaxLevel               = "Weapon is already at max level"
	ErrInsufficientCoins      = "Not enough coins"
	ErrFailedCreateSession    = "Failed to create session"
	ErrBattleNotYours         = "Battle belongs to another player"
	ErrNameInvalid            = "Invalid player name"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID    = "battle_id"
	LogFieldAccountID   = "account_id"
	LogFieldFighter     = "fighter"
	LogFieldOpponent    = "opponent"
	LogFieldDifficulty  = "difficulty"
	LogFieldWinner      = "winner"
	LogFieldCoins       = "coins"
	LogFieldAchievement = "achievement"
	LogFieldAction      = "action"
	LogFieldSource      = "source"
	LogFieldAddr        = "addr"
	LogFieldCount       = "count"
	LogFieldVersion     = "version"
)
