package database

import (
	"log"
	"os"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticClient sert la recherche plein texte du catalogue. Optionnel : sans
// lui, la recherche retombe sur un filtre SQL.
var ElasticClient *elasticsearch.Client

func ConnectElastic() {
	elasticURL := os.Getenv("ELASTIC_URL")
	if elasticURL == "" {
		elasticURL = "http://localhost:9200"
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{elasticURL},
		Username:  os.Getenv("ELASTIC_USERNAME"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	})
	if err != nil {
		log.Println("⚠️ Elasticsearch non configuré :", err)
		return
	}

	ElasticClient = client
	log.Println("✅ Elasticsearch connecté :", elasticURL)
}
