package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string        // Application port
	DBUser           string        // Database user
	DBPassword       string        // Database password
	DBHost           string        // Database host
	DBPort           string        // Database port
	DBName           string        // Database name
	DBConnectTimeout time.Duration // Single startup connection attempt budget
	JWTSecret        string        // JWT secret key
	RedisAddr        string        // Redis server address
	RedisPass        string        // Redis password
	RedisDB          int           // Redis database number
	CoursesPath      string        // Course catalog JSON file
	WebsitesPath     string        // Recommended site list JSON file
	IsProd           bool          // Is production environment
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	// Connection attempt budget in milliseconds, 10s when unset
	connectTimeout := 10000
	if v, err := strconv.Atoi(os.Getenv("DB_CONNECT_TIMEOUT")); err == nil && v > 0 {
		connectTimeout = v
	}
	coursesPath := os.Getenv("COURSES_PATH")
	if coursesPath == "" {
		coursesPath = "doc/courses.json"
	}
	websitesPath := os.Getenv("WEBSITES_PATH")
	if websitesPath == "" {
		websitesPath = "doc/websites.json"
	}
	return &Config{
		AppPort:          os.Getenv("APP_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBName:           os.Getenv("DB_NAME"),
		DBConnectTimeout: time.Duration(connectTimeout) * time.Millisecond,
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          redisDB,
		CoursesPath:      coursesPath,
		WebsitesPath:     websitesPath,
		IsProd:           os.Getenv("IS_PROD") == "true",
	}
}
