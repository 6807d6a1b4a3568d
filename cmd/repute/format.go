package main

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/repute-dao/repute-contract/rpc/repute"
)

func formatRole(r *repute.Role) string {
	if r == nil {
		return "none"
	}
	return fmt.Sprintf("#%s %s (threshold %s)", r.Index, r.Name, r.Threshold)
}

func formatState(st *repute.ProgramState) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "admin: %s\n", address.Uint160ToString(st.Admin))
	fmt.Fprintf(&sb, "token: %s\n", st.TokenMint.StringLE())
	fmt.Fprintf(&sb, "cooldown: %s\n", formatSeconds(st.CooldownPeriod))
	fmt.Fprintf(&sb, "roles: %s\n", st.RoleCount)

	return sb.String()
}

func formatSeconds(s *big.Int) string {
	if !s.IsInt64() {
		return s.String() + "s"
	}
	return (time.Duration(s.Int64()) * time.Second).String()
}

// formatTimestamp formats block timestamp in milliseconds.
func formatTimestamp(ms *big.Int) string {
	if !ms.IsInt64() {
		return ms.String()
	}
	return time.UnixMilli(ms.Int64()).UTC().Format(time.RFC3339)
}
