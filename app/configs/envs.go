package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string

	AppAuthKey string
	AppEncKey  string
	AppURL     string
	AppEnv     string

	GoogleClientID string

	BkashBaseURL   string
	BkashUsername  string
	BkashPassword  string
	BkashAppKey    string
	BkashAppSecret string

	DeliveryFeeInsideDhaka  string
	DeliveryFeeOutsideDhaka string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		Port:       os.Getenv("APP_PORT"),

		AppAuthKey: os.Getenv("APP_AUTH_KEY"),
		AppEncKey:  os.Getenv("APP_ENC_KEY"),
		AppURL:     os.Getenv("APP_URL"),
		AppEnv:     os.Getenv("APP_ENV"),

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		BkashBaseURL:   os.Getenv("BKASH_BASE_URL"),
		BkashUsername:  os.Getenv("BKASH_USERNAME"),
		BkashPassword:  os.Getenv("BKASH_PASSWORD"),
		BkashAppKey:    os.Getenv("BKASH_APP_KEY"),
		BkashAppSecret: os.Getenv("BKASH_APP_SECRET"),

		DeliveryFeeInsideDhaka:  os.Getenv("DELIVERY_FEE_INSIDE_DHAKA"),
		DeliveryFeeOutsideDhaka: os.Getenv("DELIVERY_FEE_OUTSIDE_DHAKA"),
	}

}

var LoadENV = LoadEnv()
