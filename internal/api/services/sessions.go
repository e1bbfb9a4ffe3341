package services

import (
	"context"
	"time"

	"github.com/rohits-web03/vybr8r/internal/metrics"
)

// WalletSession is the result of a wallet sign-in.
type WalletSession struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
	Created   bool
}

// Sessions resolves a wallet to its user and mints a credential for it.
type Sessions struct {
	resolver *UserResolver
	tokens   *TokenIssuer
}

func NewSessions(resolver *UserResolver, tokens *TokenIssuer) *Sessions {
	return &Sessions{resolver: resolver, tokens: tokens}
}

func (s *Sessions) WalletAuth(ctx context.Context, walletAddress string) (*WalletSession, error) {
	user, created, err := s.resolver.ResolveWallet(ctx, walletAddress)
	if err != nil {
		metrics.WalletAuths.WithLabelValues("error").Inc()
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.WalletAuths.WithLabelValues("error").Inc()
		return nil, err
	}

	result := "existing"
	if created {
		result = "created"
	}
	metrics.WalletAuths.WithLabelValues(result).Inc()

	return &WalletSession{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      Summarize(user),
		Created:   created,
	}, nil
}
