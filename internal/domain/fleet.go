package domain

type Plane struct {
	ID           int64  `json:"id"`
	Model        string `json:"model"`
	Registration string `json:"registration"`
	Capacity     int    `json:"capacity"`
	Available    bool   `json:"available"`
}

type Crew struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Members   int    `json:"members"`
	MainRole  string `json:"main_role"`
	Available bool   `json:"available"`
}
