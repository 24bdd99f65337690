package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache é uma abstração explícita de cache de resultados, chaveada pela
// impressão digital da entrada. A posse e a invalidação são do chamador:
// o pipeline em si nunca guarda estado entre chamadas.
type Cache[T any] struct {
	inner *gocache.Cache
}

// New cria um cache com o TTL informado. Entradas expiradas são varridas
// no dobro do TTL.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		inner: gocache.New(ttl, 2*ttl),
	}
}

// Get retorna o valor associado à chave, se presente e não expirado.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	value, found := c.inner.Get(key)
	if !found {
		return zero, false
	}

	typed, ok := value.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// Set armazena o valor com o TTL padrão do cache.
func (c *Cache[T]) Set(key string, value T) {
	c.inner.SetDefault(key, value)
}

// Flush descarta todas as entradas. Chamado após qualquer escrita que
// altere o conjunto canônico.
func (c *Cache[T]) Flush() {
	c.inner.Flush()
}

// Size retorna o número de entradas correntes (incluindo expiradas ainda
// não varridas).
func (c *Cache[T]) Size() int {
	return c.inner.ItemCount()
}

// Fingerprint calcula a impressão digital determinística de uma entrada a
// partir de suas partes (contagem de linhas, datas, totais).
func Fingerprint(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:])
}
