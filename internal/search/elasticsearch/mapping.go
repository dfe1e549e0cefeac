package elasticsearch

// DefaultIndexName is the default Elasticsearch index for product documents.
const DefaultIndexName = "products"

// indexMapping is the full settings + mappings body for the products index.
// Dynamic field addition is disabled: a document field not declared here is
// silently dropped by the index, so this mapping and the document shape must
// change together. The sku_ngram analyzer produces 2-12 character edge
// n-grams of letters and digits for prefix-style SKU matching.
func indexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "sku_ngram": {
          "type": "custom",
          "tokenizer": "sku_ngram_tokenizer",
          "filter": ["lowercase"]
        }
      },
      "tokenizer": {
        "sku_ngram_tokenizer": {
          "type": "edge_ngram",
          "min_gram": 2,
          "max_gram": 12,
          "token_chars": ["letter", "digit"]
        }
      }
    }
  },
  "mappings": {
    "dynamic": false,
    "properties": {
      "id":   { "type": "integer" },
      "key":  { "type": "keyword" },
      "path": { "type": "keyword" },
      "name": {
        "type": "text",
        "analyzer": "standard",
        "fields": {
          "keyword": { "type": "keyword", "ignore_above": 256 }
        }
      },
      "sku":        { "type": "keyword" },
      "sku_search": { "type": "text", "analyzer": "sku_ngram" },
      "description": { "type": "text" },
      "price": {
        "type": "object",
        "properties": {
          "value": { "type": "double" },
          "unit":  { "type": "keyword" }
        }
      },
      "stockQuantity": { "type": "double" },
      "weight":        { "type": "double" },
      "brand": {
        "properties": {
          "id":   { "type": "integer" },
          "name": { "type": "keyword" },
          "path": { "type": "keyword" }
        }
      },
      "category": {
        "properties": {
          "id":   { "type": "integer" },
          "name": { "type": "keyword" },
          "path": { "type": "keyword" }
        }
      },
      "createdAt": { "type": "date", "format": "strict_date_optional_time||epoch_millis" },
      "updatedAt": { "type": "date", "format": "strict_date_optional_time||epoch_millis" }
    }
  }
}`
}
