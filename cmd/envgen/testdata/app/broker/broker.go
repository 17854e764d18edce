package broker

type Config struct {
	Uris []string
	Sasl *SaslConfig
}

type SaslConfig struct {
	Username string
	Password string
}
