/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/nzcp/nzcp-go/pkg/cache/lru"
	"github.com/nzcp/nzcp-go/pkg/cache/mem"
	"github.com/nzcp/nzcp-go/pkg/common/log"
	"github.com/nzcp/nzcp-go/pkg/controller"
	"github.com/nzcp/nzcp-go/pkg/vdr/web"
	"github.com/nzcp/nzcp-go/spi/cache"
)

const (
	// api host flag.
	hostFlagName      = "api-host"
	hostEnvKey        = "NZCP_API_HOST"
	hostFlagShorthand = "a"
	hostFlagUsage     = "Host Name:Port." +
		" Alternatively, this can be set with the following environment variable: " + hostEnvKey

	// api token flag.
	tokenFlagName      = "api-token"
	tokenEnvKey        = "NZCP_API_TOKEN" // nolint:gosec
	tokenFlagShorthand = "t"
	tokenFlagUsage     = "Check for bearer token in the authorization header (optional)." +
		" Alternatively, this can be set with the following environment variable: " + tokenEnvKey

	// log level.
	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "NZCP_LOG_LEVEL"
	logLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey

	// test issuers flag.
	allowTestIssuersFlagName  = "allow-test-issuers"
	allowTestIssuersEnvKey    = "NZCP_ALLOW_TEST_ISSUERS"
	allowTestIssuersFlagUsage = "Permit requests to accept passes signed by the test issuers." +
		" Possible values [true] [false]. Defaults to false if not set." +
		" Alternatively, this can be set with the following environment variable: " + allowTestIssuersEnvKey

	// did document cache type flag.
	cacheTypeFlagName  = "cache-type"
	cacheTypeEnvKey    = "NZCP_CACHE_TYPE"
	cacheTypeFlagUsage = "The DID document cache to use. Supported options: lru, mem, none. Defaults to lru if not set." +
		" Alternatively, this can be set with the following environment variable: " + cacheTypeEnvKey

	cacheTypeLRUOption  = "lru"
	cacheTypeMemOption  = "mem"
	cacheTypeNoneOption = "none"

	// did document cache size flag.
	cacheSizeFlagName  = "cache-size"
	cacheSizeEnvKey    = "NZCP_CACHE_SIZE"
	cacheSizeFlagUsage = "Maximum number of DID documents kept in the cache. Defaults to 100 if not set." +
		" Alternatively, this can be set with the following environment variable: " + cacheSizeEnvKey

	// did document cache ttl flag.
	cacheTTLFlagName  = "cache-ttl"
	cacheTTLEnvKey    = "NZCP_CACHE_TTL"
	cacheTTLFlagUsage = "How long a cached DID document is kept, for example 24h. Cached documents never expire" +
		" if not set. Alternatively, this can be set with the following environment variable: " + cacheTTLEnvKey

	// did document fetch timeout flag.
	httpTimeoutFlagName  = "http-timeout"
	httpTimeoutEnvKey    = "NZCP_HTTP_TIMEOUT"
	httpTimeoutFlagUsage = "Timeout for fetching a DID document, for example 10s. No timeout if not set." +
		" Alternatively, this can be set with the following environment variable: " + httpTimeoutEnvKey

	// tls cert file.
	tlsCertFileFlagName      = "tls-cert-file"
	tlsCertFileEnvKey        = "TLS_CERT_FILE"
	tlsCertFileFlagShorthand = "c"
	tlsCertFileFlagUsage     = "tls certificate file." +
		" Alternatively, this can be set with the following environment variable: " + tlsCertFileEnvKey

	// tls key file.
	tlsKeyFileFlagName      = "tls-key-file"
	tlsKeyFileEnvKey        = "TLS_KEY_FILE"
	tlsKeyFileFlagShorthand = "k"
	tlsKeyFileFlagUsage     = "tls key file." +
		" Alternatively, this can be set with the following environment variable: " + tlsKeyFileEnvKey
)

var (
	errMissingHost = errors.New("host not provided")

	logger = log.New("nzcp/rest")
)

// nolint:gochecknoglobals
var supportedCacheProviders = map[string]func(size int, ttl time.Duration) cache.Cache{
	cacheTypeLRUOption: func(size int, ttl time.Duration) cache.Cache {
		return lru.New(lru.WithSize(size), lru.WithTTL(ttl))
	},
	cacheTypeMemOption: func(int, time.Duration) cache.Cache {
		return mem.New()
	},
	cacheTypeNoneOption: func(int, time.Duration) cache.Cache {
		return nil
	},
}

type serverParameters struct {
	server           server
	host             string
	token            string
	allowTestIssuers bool
	cacheType        string
	cacheSize        int
	cacheTTL         time.Duration
	httpTimeout      time.Duration
	tlsCertFile      string
	tlsKeyFile       string
}

type server interface {
	ListenAndServe(host string, router http.Handler, certFile, keyFile string) error
}

// HTTPServer represents an actual server implementation.
type HTTPServer struct{}

// ListenAndServe starts the server using the standard Go HTTP server implementation.
func (s *HTTPServer) ListenAndServe(host string, router http.Handler, certFile, keyFile string) error {
	if certFile != "" && keyFile != "" {
		return http.ListenAndServeTLS(host, certFile, keyFile, router)
	}

	return http.ListenAndServe(host, router) // nolint:gosec
}

// Cmd returns the Cobra start command.
func Cmd(server server) (*cobra.Command, error) {
	startCmd := createStartCMD(server)

	createFlags(startCmd)

	return startCmd, nil
}

func createStartCMD(server server) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the verifier",
		Long:  `Start the NZ Covid Pass verifier REST API`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
			if err != nil {
				return err
			}

			err = setLogLevel(logLevel)
			if err != nil {
				return err
			}

			parameters, err := getServerParameters(cmd)
			if err != nil {
				return err
			}

			parameters.server = server

			return startServer(parameters)
		},
	}
}

func getServerParameters(cmd *cobra.Command) (*serverParameters, error) {
	host, err := getUserSetVar(cmd, hostFlagName, hostEnvKey, false)
	if err != nil {
		return nil, err
	}

	token, err := getUserSetVar(cmd, tokenFlagName, tokenEnvKey, true)
	if err != nil {
		return nil, err
	}

	allowTestIssuers, err := getBool(cmd, allowTestIssuersFlagName, allowTestIssuersEnvKey)
	if err != nil {
		return nil, err
	}

	cacheType, err := getCacheType(cmd)
	if err != nil {
		return nil, err
	}

	cacheSize, err := getCacheSize(cmd)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := getDuration(cmd, cacheTTLFlagName, cacheTTLEnvKey)
	if err != nil {
		return nil, err
	}

	httpTimeout, err := getDuration(cmd, httpTimeoutFlagName, httpTimeoutEnvKey)
	if err != nil {
		return nil, err
	}

	tlsCertFile, err := getUserSetVar(cmd, tlsCertFileFlagName, tlsCertFileEnvKey, true)
	if err != nil {
		return nil, err
	}

	tlsKeyFile, err := getUserSetVar(cmd, tlsKeyFileFlagName, tlsKeyFileEnvKey, true)
	if err != nil {
		return nil, err
	}

	return &serverParameters{
		host:             host,
		token:            token,
		allowTestIssuers: allowTestIssuers,
		cacheType:        cacheType,
		cacheSize:        cacheSize,
		cacheTTL:         cacheTTL,
		httpTimeout:      httpTimeout,
		tlsCertFile:      tlsCertFile,
		tlsKeyFile:       tlsKeyFile,
	}, nil
}

func getBool(cmd *cobra.Command, flagName, envKey string) (bool, error) {
	value, err := getUserSetVar(cmd, flagName, envKey, true)
	if err != nil || value == "" {
		return false, err
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "invalid value [%s] for %s", value, flagName)
	}

	return b, nil
}

func getCacheType(cmd *cobra.Command) (string, error) {
	value, err := getUserSetVar(cmd, cacheTypeFlagName, cacheTypeEnvKey, true)
	if err != nil || value == "" {
		return cacheTypeLRUOption, err
	}

	if _, ok := supportedCacheProviders[value]; !ok {
		return "", errors.Errorf("cache type %s not supported", value)
	}

	return value, nil
}

func getCacheSize(cmd *cobra.Command) (int, error) {
	value, err := getUserSetVar(cmd, cacheSizeFlagName, cacheSizeEnvKey, true)
	if err != nil || value == "" {
		return lru.DefaultSize, err
	}

	size, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid value [%s] for %s", value, cacheSizeFlagName)
	}

	if size < 1 {
		return 0, errors.Errorf("%s must be positive, got %d", cacheSizeFlagName, size)
	}

	return size, nil
}

func getDuration(cmd *cobra.Command, flagName, envKey string) (time.Duration, error) {
	value, err := getUserSetVar(cmd, flagName, envKey, true)
	if err != nil || value == "" {
		return 0, err
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid value [%s] for %s", value, flagName)
	}

	if d < 0 {
		return 0, errors.Errorf("%s must not be negative, got %s", flagName, value)
	}

	return d, nil
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostFlagName, hostFlagShorthand, "", hostFlagUsage)
	startCmd.Flags().StringP(tokenFlagName, tokenFlagShorthand, "", tokenFlagUsage)
	startCmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
	startCmd.Flags().StringP(allowTestIssuersFlagName, "", "", allowTestIssuersFlagUsage)
	startCmd.Flags().StringP(cacheTypeFlagName, "", "", cacheTypeFlagUsage)
	startCmd.Flags().StringP(cacheSizeFlagName, "", "", cacheSizeFlagUsage)
	startCmd.Flags().StringP(cacheTTLFlagName, "", "", cacheTTLFlagUsage)
	startCmd.Flags().StringP(httpTimeoutFlagName, "", "", httpTimeoutFlagUsage)
	startCmd.Flags().StringP(tlsCertFileFlagName, tlsCertFileFlagShorthand, "", tlsCertFileFlagUsage)
	startCmd.Flags().StringP(tlsKeyFileFlagName, tlsKeyFileFlagShorthand, "", tlsKeyFileFlagUsage)
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %w", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func setLogLevel(logLevel string) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Infof("logger level set to %s", logLevel)
	}

	return nil
}

func validateAuthorizationBearerToken(w http.ResponseWriter, r *http.Request, token string) bool {
	actHdr := r.Header.Get("Authorization")
	expHdr := "Bearer " + token

	if subtle.ConstantTimeCompare([]byte(actHdr), []byte(expHdr)) != 1 {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorised.\n")) // nolint:gosec,errcheck

		return false
	}

	return true
}

func authorizationMiddleware(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validateAuthorizationBearerToken(w, r, token) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

func createRouter(parameters *serverParameters) http.Handler {
	opts := []controller.Opt{
		controller.WithTestIssuers(parameters.allowTestIssuers),
		controller.WithHTTPClient(web.NewHTTPClient(parameters.httpTimeout)),
	}

	if c := newCache(parameters); c != nil {
		opts = append(opts, controller.WithCache(c))
	}

	handlers := controller.GetRESTHandlers(opts...)

	router := mux.NewRouter()

	if parameters.token != "" {
		router.Use(authorizationMiddleware(parameters.token))
	}

	for _, handler := range handlers {
		router.HandleFunc(handler.Path(), handler.Handle()).Methods(handler.Method())
	}

	return cors.New(
		cors.Options{
			AllowedMethods: []string{http.MethodPost, http.MethodHead},
			AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		},
	).Handler(router)
}

func newCache(parameters *serverParameters) cache.Cache {
	provider, ok := supportedCacheProviders[parameters.cacheType]
	if !ok {
		provider = supportedCacheProviders[cacheTypeLRUOption]
	}

	return provider(parameters.cacheSize, parameters.cacheTTL)
}

func startServer(parameters *serverParameters) error {
	if parameters.host == "" {
		return errMissingHost
	}

	handler := createRouter(parameters)

	logger.Infof("Starting nzcp verifier rest on host [%s], test issuers allowed [%t]",
		parameters.host, parameters.allowTestIssuers)

	err := parameters.server.ListenAndServe(parameters.host, handler, parameters.tlsCertFile, parameters.tlsKeyFile)
	if err != nil {
		return fmt.Errorf("failed to start nzcp verifier rest on port [%s], cause:  %w", parameters.host, err)
	}

	return nil
}
