// Package storage define a fronteira de persistência: um key-value store onde
// cada coleção vive serializada em JSON sob uma chave própria. Toda escrita
// sobrescreve o valor inteiro (read-modify-write da coleção completa), então
// escritores concorrentes em processos distintos seguem last-write-wins.
// Limitação aceita: não sincronizamos gravações entre instâncias.
package storage

import "context"

type KV interface {
	// Get retorna (nil, false, nil) quando a chave não existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
