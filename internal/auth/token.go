package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdobak/go-xerrors"
)

const (
	issuer   = "conduit"
	TokenTTL = 60 * time.Minute
)

var ErrUnauthenticated = xerrors.Message("Not authenticated")

// GenerateToken issues a signed identity token for the given account. The
// token expires TokenTTL after issuance.
func (auth *Auth) GenerateToken(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(auth.secret))
	if err != nil {
		return "", xerrors.New(err)
	}

	return signedString, nil
}

// VerifyToken checks the signature, expiry and issuer of a token and returns
// the account id from its subject claim. Every failure mode maps to
// ErrUnauthenticated so callers cannot distinguish a missing token from a
// forged or expired one.
func (auth *Auth) VerifyToken(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, xerrors.New(ErrUnauthenticated)
	}

	claims := &Claims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.New("unexpected signing method")
		}
		return []byte(auth.secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())

	if err != nil {
		return 0, xerrors.New(ErrUnauthenticated)
	}

	if !parsedToken.Valid {
		return 0, xerrors.New(ErrUnauthenticated)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, xerrors.New(ErrUnauthenticated)
	}

	return userID, nil
}
