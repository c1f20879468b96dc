package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greenkart/greenkart-api/config"
	"github.com/greenkart/greenkart-api/pkg/helpers"
	"github.com/greenkart/greenkart-api/pkg/media"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire themselves from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	cookieMgr  *helpers.CookieManager

	rabbitPub   *helpers.RabbitPublisher
	mediaClient *media.Cloudinary
)

func SetConfig(c *config.Config)            { cfg = c }
func GetConfig() *config.Config             { return cfg }
func SetLogger(l *logrus.Logger)            { logger = l }
func GetLogger() *logrus.Logger             { return logger }
func SetMongo(c *mongo.Client, db *mongo.Database) {
	mongoClient = c
	mongoDB = db
}
func GetMongoClient() *mongo.Client         { return mongoClient }
func GetMongoDB() *mongo.Database           { return mongoDB }
func SetRedis(r *redis.Client)              { redisClient = r }
func GetRedis() *redis.Client               { return redisClient }
func SetJWT(m *helpers.JWTManager)          { jwtManager = m }
func GetJWT() *helpers.JWTManager           { return jwtManager }
func SetCookies(m *helpers.CookieManager)   { cookieMgr = m }
func GetCookies() *helpers.CookieManager    { return cookieMgr }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetMedia(m *media.Cloudinary)            { mediaClient = m }
func GetMedia() *media.Cloudinary             { return mediaClient }
