package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type registrarFunc func(rg *gin.RouterGroup)

func (f registrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	router := NewRouter(engine)

	router.Register(registrarFunc(func(rg *gin.RouterGroup) {
		rg.POST("/webhook/user", func(c *gin.Context) { c.Status(http.StatusOK) })
	}))
	router.RegisterStore(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/products/:product_id", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("store_id"))
		})
	}))
	router.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/webhook/user", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/store-1/products/p-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "store-1", w.Body.String())
}

func TestRouter_RegistrarMiddlewareScoped(t *testing.T) {
	engine := gin.New()
	router := NewRouter(engine)

	tagged := func(c *gin.Context) {
		c.Writer.Header().Set("X-Tagged", "yes")
		c.Next()
	}
	router.RegisterStore(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/tagged", func(c *gin.Context) { c.Status(http.StatusOK) })
	}), tagged)
	router.RegisterStore(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/plain", func(c *gin.Context) { c.Status(http.StatusOK) })
	}))
	router.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/store-1/tagged", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Tagged"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/store-1/plain", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Tagged"))
}

func TestRouter_StoreMiddlewareApplied(t *testing.T) {
	engine := gin.New()
	router := NewRouter(engine)

	router.UseStoreMiddleware(func(c *gin.Context) {
		c.Set("scoped", true)
		c.Next()
	})
	router.RegisterStore(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) {
			if c.GetBool("scoped") {
				c.Status(http.StatusOK)
				return
			}
			c.Status(http.StatusInternalServerError)
		})
	}))
	router.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/store-1/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
