package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pds/models"
)

var (
	accountColumns    = []string{"did", "handle", "email", "password_hash", "created_at"}
	inviteCodeColumns = []string{"code", "available_uses", "disabled", "for_account", "created_by", "created_at"}
)

// Lookup columns accepted by buildSelectAccountQuery.
const (
	accountByDID    = "did"
	accountByHandle = "handle"
	accountByEmail  = "email"
)

func buildInsertAccountQuery(b sq.StatementBuilderType, account models.Account) (string, []any, error) {
	return b.Insert(models.Account{}.TableName()).
		Columns(accountColumns...).
		Values(account.DID, account.Handle, account.Email, account.PasswordHash, account.CreatedAt).
		ToSql()
}

func buildSelectAccountQuery(b sq.StatementBuilderType, column, value string) (string, []any, error) {
	switch column {
	case accountByDID, accountByHandle, accountByEmail:
	default:
		return "", nil, fmt.Errorf("unsupported account lookup column %q", column)
	}

	return b.Select(accountColumns...).
		From(models.Account{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, did, passwordHash string) (string, []any, error) {
	return b.Update(models.Account{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"did": did}).
		ToSql()
}

func buildInsertInviteCodeQuery(b sq.StatementBuilderType, code models.InviteCode) (string, []any, error) {
	return b.Insert(models.InviteCode{}.TableName()).
		Columns(inviteCodeColumns...).
		Values(code.Code, code.AvailableUses, code.Disabled, code.ForAccount, code.CreatedBy, code.CreatedAt).
		ToSql()
}

func buildSelectInviteCodeQuery(b sq.StatementBuilderType, code string) (string, []any, error) {
	return b.Select(inviteCodeColumns...).
		From(models.InviteCode{}.TableName()).
		Where(sq.Eq{"code": code}).
		ToSql()
}

// buildUseInviteCodeQuery decrements the remaining uses of a code that is
// still usable. Zero affected rows means the code cannot be redeemed.
func buildUseInviteCodeQuery(b sq.StatementBuilderType, code string) (string, []any, error) {
	return b.Update(models.InviteCode{}.TableName()).
		Set("available_uses", sq.Expr("available_uses - 1")).
		Where(sq.Eq{"code": code, "disabled": false}).
		Where(sq.Gt{"available_uses": 0}).
		ToSql()
}

func buildDisableInviteCodesQuery(b sq.StatementBuilderType, codes []string) (string, []any, error) {
	if len(codes) == 0 {
		return "", nil, fmt.Errorf("no invite codes to disable")
	}

	return b.Update(models.InviteCode{}.TableName()).
		Set("disabled", true).
		Where(sq.Eq{"code": codes}).
		ToSql()
}
