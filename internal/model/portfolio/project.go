package portfolio

// Project describes a single portfolio entry shown on the site.
type Project struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	Date        string   `json:"date" yaml:"date"`
	Link        string   `json:"link,omitempty" yaml:"link,omitempty"`
}

// ProjectPatch carries a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Link        *string   `json:"link,omitempty"`
}

// Apply merges the patch over the project and returns the result.
func (p ProjectPatch) Apply(base Project) Project {
	if p.Title != nil {
		base.Title = *p.Title
	}
	if p.Description != nil {
		base.Description = *p.Description
	}
	if p.Tags != nil {
		base.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Date != nil {
		base.Date = *p.Date
	}
	if p.Link != nil {
		base.Link = *p.Link
	}
	return base
}

// ProjectDraft is a project before either store has assigned it an ID.
type ProjectDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	Link        string   `json:"link,omitempty"`
}
