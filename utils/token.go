package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// WalletInviteClaim is embedded in shared-wallet invite links.
type WalletInviteClaim struct {
	WalletId  int    `json:"wallet_id"`
	InvitedBy int    `json:"invited_by"`
	Role      string `json:"role"`
	jwt.StandardClaims
}

var jwtSecret = []byte(getJwtSecret())

func getJwtSecret() string {
	secret := os.Getenv("API_SECRET")
	if secret == "" {
		return "UniBudget-Secret"
	}
	return secret
}

func inviteLifespanHours() int {
	n, err := strconv.Atoi(os.Getenv("INVITE_HOUR_LIFESPAN"))
	if err != nil || n <= 0 {
		return 72
	}
	return n
}

// JwtGenerateWalletInvite signs an invite token for joining a shared wallet.
func JwtGenerateWalletInvite(walletId int, invitedBy int, role string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &WalletInviteClaim{
		WalletId:  walletId,
		InvitedBy: invitedBy,
		Role:      role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour * time.Duration(inviteLifespanHours())).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})

	token, err := t.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}

	return token, nil
}

// JwtValidateWalletInvite parses an invite token and returns its claim.
func JwtValidateWalletInvite(token string) (*WalletInviteClaim, error) {
	parsed, err := jwt.ParseWithClaims(token, &WalletInviteClaim{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("there's a problem with the signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claim, ok := parsed.Claims.(*WalletInviteClaim)
	if !ok || !parsed.Valid || claim.WalletId <= 0 {
		return nil, errors.New("invalid invite token")
	}
	return claim, nil
}
