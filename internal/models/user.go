package models

// User est l'instantané de profil conservé dans la session
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Avatar  string `json:"avatar,omitempty"`
	Token   string `json:"token,omitempty"`
}

// ProfileUpdate ne transmet que les champs renseignés
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}
