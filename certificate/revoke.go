package certificate

import "context"

// RevokeToken forwards a revocation to the ledger and returns the transaction
// hash. Revocation is one-way: once flipped, verification reports the token
// invalid forever regardless of signature correctness.
func (s *Service) RevokeToken(ctx context.Context, tokenID uint64) (string, error) {
	return s.ledger.Revoke(ctx, tokenID)
}
