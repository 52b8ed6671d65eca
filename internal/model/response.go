package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type UserEnvelope struct {
	User *User `json:"user"`
}

type AuthTokenEnvelope struct {
	AuthToken AuthTokenResponse `json:"auth_token"`
}

type WorkoutEnvelope struct {
	Workout *Workout `json:"workout"`
}
