package content

import "github.com/MrSnakeDoc/awareness/internal/charts"

// SiteFile is the top-level structure of the content file.
type SiteFile struct {
	Site   SiteProps   `yaml:"site"`
	Nav    []LinkProps `yaml:"nav"`
	Footer FooterProps `yaml:"footer"`
	Pages  PagesProps  `yaml:"pages"`
}

type SiteProps struct {
	Name        string `yaml:"name"`
	Brand       string `yaml:"brand"`
	Description string `yaml:"description,omitempty"`
}

type LinkProps struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type FooterProps struct {
	AboutTitle      string      `yaml:"about_title"`
	About           string      `yaml:"about"`
	QuickLinksTitle string      `yaml:"quick_links_title"`
	QuickLinks      []LinkProps `yaml:"quick_links"`
	SocialTitle     string      `yaml:"social_title"`
	SocialLinks     []LinkProps `yaml:"social_links"`
	Copyright       string      `yaml:"copyright"`
}

type MetaProps struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
}

type CardProps struct {
	Title  string     `yaml:"title"`
	Body   string     `yaml:"body"`
	Button *LinkProps `yaml:"button,omitempty"`
}

type StatProps struct {
	Label  string `yaml:"label"`
	Value  string `yaml:"value"`
	Detail string `yaml:"detail,omitempty"`
}

type SectionProps struct {
	Title      string   `yaml:"title"`
	Paragraphs []string `yaml:"paragraphs"`
}

type PagesProps struct {
	Home      HomeProps      `yaml:"home"`
	Analytics AnalyticsProps `yaml:"analytics"`
	Resources ResourcesProps `yaml:"resources"`
	Privacy   LegalProps     `yaml:"privacy"`
	Terms     LegalProps     `yaml:"terms"`
	Contact   ContactProps   `yaml:"contact"`
}

type HomeProps struct {
	MetaProps `yaml:",inline"`
	Hero      struct {
		Title string `yaml:"title"`
		Text  string `yaml:"text"`
	} `yaml:"hero"`
	Video struct {
		Button     string `yaml:"button"`
		URL        string `yaml:"url"`
		FrameTitle string `yaml:"frame_title"`
	} `yaml:"video"`
	Intro CardProps   `yaml:"intro"`
	Cards []CardProps `yaml:"cards"`
}

type AnalyticsProps struct {
	MetaProps  `yaml:",inline"`
	Heading    string         `yaml:"heading"`
	Subtitle   string         `yaml:"subtitle"`
	Findings   []StatProps    `yaml:"findings"`
	Charts     []charts.Chart `yaml:"charts"`
	Impact     []CardProps    `yaml:"impact"`
	Understand SectionProps   `yaml:"understand"`
	Survey     struct {
		Title     string         `yaml:"title"`
		Charts    []charts.Chart `yaml:"charts"`
		Details   []StatProps    `yaml:"details"`
		Ethnicity []StatProps    `yaml:"ethnicity"`
	} `yaml:"survey"`
}

type ResourcesProps struct {
	MetaProps `yaml:",inline"`
	Heading   string    `yaml:"heading"`
	Body      string    `yaml:"body"`
	Action    LinkProps `yaml:"action"`
}

type LegalProps struct {
	MetaProps  `yaml:",inline"`
	Heading    string   `yaml:"heading"`
	Paragraphs []string `yaml:"paragraphs"`
}

type FieldProps struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Type        string `yaml:"type"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Rows        int    `yaml:"rows,omitempty"`
}

type ContactProps struct {
	MetaProps   `yaml:",inline"`
	Heading     string       `yaml:"heading"`
	Fields      []FieldProps `yaml:"fields"`
	Submit      string       `yaml:"submit"`
	InfoTitle   string       `yaml:"info_title"`
	Info        []StatProps  `yaml:"info"`
	HoursTitle  string       `yaml:"hours_title"`
	Hours       []StatProps  `yaml:"hours"`
}
