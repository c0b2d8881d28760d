package ident

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/zero-day-ai/obsgraph"
)

// EtcdOptions configures an EtcdStore.
type EtcdOptions struct {
	// Endpoints are the etcd cluster endpoints. Required.
	Endpoints []string

	// Namespace prefixes every key. Defaults to "obsgraph".
	Namespace string

	// Codec serializes values. Defaults to JSONCodec.
	Codec Codec

	// DialTimeout is the maximum time to wait for the initial connection.
	DialTimeout time.Duration
}

// EtcdStore resolves identifiers through an etcd cluster. It suits
// deployments that already run etcd for coordination and want
// identifier bindings with the same durability.
type EtcdStore struct {
	client    *clientv3.Client
	namespace string
	codec     Codec
}

// NewEtcdStore connects to the cluster and verifies connectivity with a
// health check before returning.
func NewEtcdStore(opts EtcdOptions) (*EtcdStore, error) {
	if len(opts.Endpoints) == 0 {
		return nil, fmt.Errorf("etcd endpoints cannot be empty")
	}
	if opts.Namespace == "" {
		opts.Namespace = "obsgraph"
	}
	if opts.Codec == nil {
		opts.Codec = JSONCodec{}
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := cli.Get(ctx, opts.Namespace+"/health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, fmt.Errorf("etcd health check failed: %w", err)
	}

	return &EtcdStore{
		client:    cli,
		namespace: opts.Namespace,
		codec:     opts.Codec,
	}, nil
}

func (s *EtcdStore) key(id string) string {
	return s.namespace + "/" + id
}

// Put binds an identifier to a value.
func (s *EtcdStore) Put(ctx context.Context, id string, value any) error {
	data, err := s.codec.Encode(value)
	if err != nil {
		return obsgraph.NewStorageError("EtcdStore.Put", fmt.Errorf("encode value for %s: %w", id, err))
	}
	if _, err := s.client.Put(ctx, s.key(id), string(data)); err != nil {
		return obsgraph.NewStorageError("EtcdStore.Put", err)
	}
	return nil
}

// Get returns the value bound to an identifier.
func (s *EtcdStore) Get(ctx context.Context, id string) (any, error) {
	resp, err := s.client.Get(ctx, s.key(id))
	if err != nil {
		return nil, obsgraph.NewStorageError("EtcdStore.Get", err)
	}
	if len(resp.Kvs) == 0 {
		return nil, obsgraph.NewCacheMissError("EtcdStore.Get", id)
	}

	v, err := s.codec.Decode(resp.Kvs[0].Value)
	if err != nil {
		return nil, obsgraph.NewStorageError("EtcdStore.Get", fmt.Errorf("decode value for %s: %w", id, err))
	}
	return v, nil
}

// Reset drops every entry in this store's namespace.
func (s *EtcdStore) Reset(ctx context.Context) error {
	if _, err := s.client.Delete(ctx, s.namespace+"/", clientv3.WithPrefix()); err != nil {
		return obsgraph.NewStorageError("EtcdStore.Reset", err)
	}
	return nil
}

// Close closes the etcd client.
func (s *EtcdStore) Close() error {
	return s.client.Close()
}
