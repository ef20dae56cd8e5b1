package whatsapp

import (
	"sort"

	"go.mau.fi/whatsmeow"

	"whatsapp-media-bridge/internal/apperr"
)

// Group is a joined group chat.
type Group struct {
	JID  string
	Name string
}

// ListGroups returns the groups the session has joined, sorted by name.
func ListGroups(cli *whatsmeow.Client) ([]Group, error) {
	infos, err := cli.GetJoinedGroups()
	if err != nil {
		return nil, apperr.Transport("whatsapp", "list groups", err)
	}
	groups := make([]Group, 0, len(infos))
	for _, info := range infos {
		groups = append(groups, Group{JID: info.JID.String(), Name: info.Name})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}
