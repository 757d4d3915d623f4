package trie

//go:generate mockgen -destination=mock_metrics_test.go -package $GOPACKAGE . Metrics

// Metrics is the metrics interface to use for the trie.
type Metrics interface {
	NodesStored(n uint32)
	NodesFetched(n uint32)
}
