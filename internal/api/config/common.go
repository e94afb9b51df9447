package config

// Config 配置主体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Elastic ElasticConfig `mapstructure:"elastic"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig 文档库配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// ElasticConfig Elastic配置，enabled 为 false 时检索退化为仓储层的内存过滤
type ElasticConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	PostIndex string `mapstructure:"post_index"`
}

// AuthConfig 鉴权配置
type AuthConfig struct {
	JWTSecret      string   `mapstructure:"jwt_secret"`
	ExpireHours    int      `mapstructure:"expire_hours"`
	AdminEmails    []string `mapstructure:"admin_emails"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// IsAdminEmail 判断邮箱是否在管理员白名单内
func (c *AuthConfig) IsAdminEmail(email string) bool {
	if email == "" {
		return false
	}
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}
