// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the corpus storage abstraction for sonnets.
//
// The corpus is an ordered, fixed sequence of documents. It is written once
// when the process starts and only read afterwards. Search code depends on
// the DocumentRepository interface, never on a concrete backend.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: transaction support and lifecycle
//   - DocumentRepository: add, look up and list documents in corpus order
//
// # Usage
//
// Use the in-memory BadgerDB store:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer repo.Close()
//
// # Serialization
//
// Documents are stored in the MUS binary format (see core.DocumentMUS).
// MarshalDocument and UnmarshalDocument wrap the serializers and report
// ErrSerializationFailed for corrupt data.
package storage
