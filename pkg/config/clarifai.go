package config

// ClarifaiConfig holds credentials and model selection for the Clarifai
// face-detection API
type ClarifaiConfig struct {
	PAT            string `env:"CLARIFAI_PAT" env-default:""`
	UserID         string `env:"CLARIFAI_USER_ID" env-default:""`
	AppID          string `env:"CLARIFAI_APP_ID" env-default:""`
	ModelID        string `env:"CLARIFAI_MODEL_ID" env-default:"face-detection"`
	ModelVersionID string `env:"CLARIFAI_MODEL_VERSION_ID" env-default:"6dc7e46bc9124c5c8824be4822abe105"`
	BaseURL        string `env:"CLARIFAI_BASE_URL" env-default:"https://api.clarifai.com"`
}
