package response

import "github.com/mcoot/restadmin/internal/model"

// Profile represents a canonical player profile in API responses
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProfileFromModel converts a model.Profile to a response Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		ID:   p.ID.String(),
		Name: p.Name,
	}
}

// ProfilesFromModel converts a slice of profiles, never returning nil
func ProfilesFromModel(ps []model.Profile) []Profile {
	out := make([]Profile, len(ps))
	for i := range ps {
		out[i] = ProfileFromModel(&ps[i])
	}
	return out
}
