package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AwsEndpointUrl         string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion              string `flag:"awsregion" env:"AWS_REGION" default:"us-central-1" description:"AWS region"`
	AwsAccessKeyId         string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey     string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket              string `flag:"awsbucket" env:"AWS_BUCKET" default:"rachelhardingphotography.com" description:"S3 bucket"`
	AlbumsFolder           string `flag:"af" env:"ALBUMS_FOLDER" default:"albums" description:"S3 folder for album photos"`
	ContactEmail           string `flag:"contactemail" env:"CONTACT_EMAIL" default:"" description:"Address contact form submissions are sent to"`
	ContactFromEmail       string `flag:"contactfromemail" env:"CONTACT_FROM_EMAIL" default:"noreply@rachelhardingphotography.com" description:"Address contact form submissions are sent from"`
	DownloadBaseURL        string `flag:"dlb" env:"DOWNLOAD_BASE_URL" default:"http://localhost:8080" description:"Base URL for album downloads"`
	DownloadExpirationDays int    `flag:"dle" env:"DOWNLOAD_EXPIRATION_DAYS" default:"7" description:"Number of days before album archives expire"`
	DSN                    string `flag:"dsn" env:"DSN" default:"file:./data/rachelhardingphotography.db" description:"Data source name"`
	EmailApiKey            string `flag:"emailapikey" env:"EMAIL_API_KEY" default:"" description:"API key for sending emails"`
	GridGap                int    `flag:"gridgap" env:"GRID_GAP" default:"10" description:"Gap in pixels between gallery images"`
	Host                   string `flag:"host" env:"HOST" default:"localhost:8080" description:"The address and port to bind the HTTP server to"`
	LogLevel               string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxVariantWorkers      int    `flag:"mvw" env:"MAX_VARIANT_WORKERS" default:"20" description:"Maximum number of concurrent variant workers"`
	RowHeight              int    `flag:"rowheight" env:"ROW_HEIGHT" default:"300" description:"Target gallery row height in pixels"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
