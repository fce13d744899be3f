package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	CatalogCacheTTL = 10 * time.Minute
	UserCacheTTL    = 5 * time.Minute
)

// Le catalogue (produits, services, types de livraison) change rarement et
// se lit à chaque création de commande : on cache chaque page sérialisée.

func catalogKey(kind string, pageIndex, pageSize int) string {
	return fmt.Sprintf("catalog:%s:%d:%d", kind, pageIndex, pageSize)
}

// GetCatalogPage récupère une page de catalogue depuis Redis. Le deuxième
// retour dit si la clé existait.
func GetCatalogPage(kind string, pageIndex, pageSize int, dest any) bool {
	if RedisClient == nil {
		return false
	}
	data, err := RedisClient.Get(ctx, catalogKey(kind, pageIndex, pageSize)).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetCatalogPage met une page de catalogue en cache, best-effort.
func SetCatalogPage(kind string, pageIndex, pageSize int, value any) {
	if RedisClient == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	RedisClient.Set(ctx, catalogKey(kind, pageIndex, pageSize), data, CatalogCacheTTL)
}

// InvalidateCatalog purge toutes les pages d'un type de catalogue après une
// écriture admin.
func InvalidateCatalog(kind string) {
	if RedisClient == nil {
		return
	}
	iter := RedisClient.Scan(ctx, 0, "catalog:"+kind+":*", 100).Iterator()
	for iter.Next(ctx) {
		RedisClient.Del(ctx, iter.Val())
	}
}
