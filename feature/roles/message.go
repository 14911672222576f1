package roles

import (
	"sort"
	"strings"
)

const (
	noRolesMessage       = "You have not been granted any roles."
	walletMissingMessage = "Cannot check for roles because you haven't linked a wallet yet. Please link a wallet and try again."
	unavailableMessage   = "The bot is having trouble reading wallet holdings, please try again later. Roles will be frozen until the bot can read holdings again."
)

// GrantedMessage renders the reply listing roles per community. Communities
// without roles are left out.
func GrantedMessage(active map[string][]string) string {
	names := make([]string, 0, len(active))
	for name, roles := range active {
		if len(roles) > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return noRolesMessage
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("You have been granted the following roles on the following servers:")
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.Join(active[name], ", "))
	}
	return b.String()
}
