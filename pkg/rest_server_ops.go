package pkg

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func InitRESTServer(restSvrPort int, restSSLEnabled bool) {

	// gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()
	baseAPIPath := "/api/v1"

	router := gin.Default()
	router.SetTrustedProxies(nil)

	router.GET(baseAPIPath+"/keyinfo", execRESTKeyInfo())
	router.GET(baseAPIPath+"/fingerprint", execRESTFingerprint())

	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"ping": "pong",
		})
	})

	if restSSLEnabled {
		router.RunTLS(":"+strconv.Itoa(restSvrPort), ".//restserver.crt", ".//restserver.key")
	} else {
		router.Run(":" + strconv.Itoa(restSvrPort))
	}

}

// inspection only, the converted private key material itself is
// never served over the wire
func execRESTKeyInfo() gin.HandlerFunc {

	fn := func(c *gin.Context) {

		keypath := c.Query("keypath")
		if len(keypath) == 0 {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "keypath query parameter is required"})
			return
		}

		var passphrase []byte
		if pass := c.Query("passphrase"); len(pass) > 0 {
			passphrase = []byte(pass)
		}

		keyInfo, err := GetPuttyKeyInfo(keypath, passphrase)
		if err != nil {
			c.IndentedJSON(http.StatusNoContent, "null")
			return
		}
		c.IndentedJSON(http.StatusOK, keyInfo)
	}

	return gin.HandlerFunc(fn)
}

func execRESTFingerprint() gin.HandlerFunc {

	fn := func(c *gin.Context) {

		keypath := c.Query("keypath")
		if len(keypath) == 0 {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "keypath query parameter is required"})
			return
		}

		var passphrase []byte
		if pass := c.Query("passphrase"); len(pass) > 0 {
			passphrase = []byte(pass)
		}

		keyInfo, err := GetPuttyKeyInfo(keypath, passphrase)
		if err != nil || len(keyInfo.Fingerprint) == 0 {
			c.IndentedJSON(http.StatusNoContent, "null")
			return
		}
		c.IndentedJSON(http.StatusOK, gin.H{
			"ppk_filepath":       keyInfo.KeyFilePath,
			"sha256_fingerprint": keyInfo.Fingerprint,
		})
	}

	return gin.HandlerFunc(fn)
}
