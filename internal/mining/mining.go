// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/rand"
	"github.com/meritlabs/meritd/chaincfg"
	"github.com/meritlabs/meritd/internal/standalone"
	"github.com/meritlabs/meritd/meritutil"
	"github.com/meritlabs/meritd/wire"
)

const (
	// generatedBlockVersion is the version of the block being generated.
	generatedBlockVersion = 1

	// maxConsecutiveInsertFailures is the number of consecutive packages
	// that may fail to fit before assembly gives up early, provided the
	// block is already nearly full.
	maxConsecutiveInsertFailures = 1000

	// nearFullWeightMargin is how close, in weight units, the block must
	// be to its weight limit before consecutive insert failures are
	// allowed to end assembly early.
	nearFullWeightMargin = 4000

	// lockTimeThreshold is the number below which a lock time is
	// interpreted as a block height rather than a unix timestamp.
	lockTimeThreshold = 5e8

	// coinbaseWitnessDataLen is the length of the witness reserved value
	// a witness bearing coinbase carries.
	coinbaseWitnessDataLen = 32
)

// witnessCommitmentHeader is the prefix of the output script that carries
// the witness commitment in the coinbase transaction.
var witnessCommitmentHeader = []byte{0xaa, 0x21, 0xa9, 0xed}

// zeroHash is the zero value hash (all zeros).
var zeroHash chainhash.Hash

// BlockTemplate houses a block that has yet to be solved along with
// additional details about the fees and the number of signature operations
// for each transaction in the block.
type BlockTemplate struct {
	// Block is a block that is ready to be solved by miners.  Thus, it is
	// completely valid with the exception of satisfying the proof-of-work
	// requirement.
	Block *wire.MsgBlock

	// Fees contains the amount of fees each transaction in the generated
	// template pays in base units.  Since the first transaction is the
	// coinbase, the first entry will contain the negative of the sum of
	// the fees of all other transactions.
	Fees []int64

	// SigOpCounts contains the number of signature operations each
	// transaction in the generated template performs.
	SigOpCounts []int64

	// Height is the height at which the block template connects to the
	// chain.
	Height int32

	// CoinbaseCommitment is the auxiliary commitment blob carried in the
	// coinbase, or nil when the template carries none.  It currently
	// holds the witness commitment when witness transactions are
	// included.
	CoinbaseCommitment []byte
}

// Config is a descriptor containing the block template assembler
// configuration.
type Config struct {
	// Policy houses the policy (configuration parameters) which is used
	// to control the generation of block templates.
	Policy *Policy

	// ChainParams identifies which chain parameters should be used.
	ChainParams *chaincfg.Params

	// TxSource defines the transaction source to use.
	TxSource TxSource

	// RefSource defines the pending referral source to use.
	RefSource RefSource

	// TimeSource defines the median time source which is used to retrieve
	// the current time adjusted by the median time offset.
	TimeSource MedianTimeSource

	// BestSnapshot defines the function to use to access information
	// about the current best block.  The returned instance should be
	// treated as immutable.
	BestSnapshot func() *BestState

	// CalcNextRequiredDifficulty defines the function to use to calculate
	// the required target difficulty for a block building on the current
	// best block with the given timestamp.
	CalcNextRequiredDifficulty func(timestamp time.Time) (uint32, error)

	// CalcBlockSubsidy defines the function to use to determine the
	// subsidy, in micros, of a block at the given height.
	CalcBlockSubsidy func(height int32) int64

	// HaveConfirmedReferral defines the function to use to determine
	// whether the provided key identifier has been beaconed by a referral
	// that is already confirmed in the chain.
	HaveConfirmedReferral func(keyID [wire.KeyIDSize]byte) bool

	// IsReferralConfirmed defines the function to use to determine
	// whether the referral with the provided hash is already confirmed in
	// the chain.
	IsReferralConfirmed func(hash *chainhash.Hash) bool

	// IsWitnessActive defines the function to use to determine whether
	// witness inclusion is active for the block being assembled.
	IsWitnessActive func() bool
}

// BlockAssembler assembles block templates.  A single assembler may be used
// for any number of sequential NewBlockTemplate calls; the per-run state is
// reset at the start of each call.  It is not safe for concurrent use.
type BlockAssembler struct {
	cfg Config

	// The following fields house the per-run state.  They are only valid
	// during a NewBlockTemplate call and are reset at the start of each.
	height          int32
	lockTimeCutoff  int64
	witnessActive   bool
	blockTxns       []*meritutil.Tx
	blockRefs       []*meritutil.Referral
	txFees          []int64
	txSigOps        []int64
	blockSize       uint32
	blockTxsSize    uint32
	blockWeight     uint32
	blockSigOps     int64
	totalFees       int64
	inBlock         map[chainhash.Hash]struct{}
	refsInBlock     map[chainhash.Hash]struct{}
	beaconedInBlock map[[wire.KeyIDSize]byte]struct{}
}

// NewBlockAssembler returns a new block assembler for the provided
// configuration.
func NewBlockAssembler(cfg *Config) *BlockAssembler {
	return &BlockAssembler{cfg: *cfg}
}

// reset clears all running totals and working sets in preparation for a new
// assembly run targeting the provided height.  The first transaction slot of
// the fee and sigop sequences is reserved for the coinbase.
func (g *BlockAssembler) reset(nextHeight int32) {
	g.height = nextHeight
	g.blockTxns = make([]*meritutil.Tx, 0, 128)
	g.blockRefs = make([]*meritutil.Referral, 0, 16)
	g.txFees = []int64{-1} // Updated once the fees are known
	g.txSigOps = []int64{-1}
	g.blockSize = 0
	g.blockTxsSize = 0
	g.blockWeight = 0
	g.blockSigOps = 0
	g.totalFees = 0
	g.inBlock = make(map[chainhash.Hash]struct{})
	g.refsInBlock = make(map[chainhash.Hash]struct{})
	g.beaconedInBlock = make(map[[wire.KeyIDSize]byte]struct{})
}

// txWeight returns the weight of the provided transaction, counting witness
// bytes once and all other bytes WitnessScaleFactor times.
func txWeight(tx *meritutil.Tx) int64 {
	msgTx := tx.MsgTx()
	baseSize := int64(msgTx.SerializeSizeStripped())
	totalSize := int64(msgTx.SerializeSize())
	return baseSize*(wire.WitnessScaleFactor-1) + totalSize
}

// addTransaction appends the provided transaction to the block body being
// built and updates the running totals by the transaction's own metrics.
// Validation must have been performed by the caller; the only failure mode is
// a bookkeeping defect, which is fatal to the run.
func (g *BlockAssembler) addTransaction(txDesc *TxDesc) error {
	txHash := txDesc.Tx.Hash()
	if _, exists := g.inBlock[*txHash]; exists {
		str := fmt.Sprintf("transaction %v committed to the block twice",
			txHash)
		return makeError(ErrTemplateBookkeeping, str)
	}

	g.blockTxns = append(g.blockTxns, txDesc.Tx)
	g.txFees = append(g.txFees, txDesc.Fee)
	g.txSigOps = append(g.txSigOps, txDesc.TotalSigOps)
	g.blockSize += uint32(txDesc.TxSize)
	g.blockTxsSize += uint32(txDesc.TxSize)
	g.blockWeight += uint32(txWeight(txDesc.Tx))
	g.blockSigOps += txDesc.TotalSigOps
	g.totalFees += txDesc.Fee
	g.inBlock[*txHash] = struct{}{}

	log.Tracef("Added tx %v (fee %v, size %v, sigops %v)", txHash,
		txDesc.Fee, txDesc.TxSize, txDesc.TotalSigOps)
	return nil
}

// addReferral appends the provided referral to the block body being built and
// updates the running totals.  The caller is responsible for not committing
// the same referral twice.
func (g *BlockAssembler) addReferral(refDesc *RefDesc) error {
	refHash := refDesc.Ref.Hash()
	if _, exists := g.refsInBlock[*refHash]; exists {
		str := fmt.Sprintf("referral %v committed to the block twice",
			refHash)
		return makeError(ErrTemplateBookkeeping, str)
	}

	refSize := uint32(refDesc.Ref.MsgReferral().SerializeSize())
	g.blockRefs = append(g.blockRefs, refDesc.Ref)
	g.blockSize += refSize
	g.blockWeight += wire.WitnessScaleFactor * refSize
	g.refsInBlock[*refHash] = struct{}{}
	g.beaconedInBlock[refDesc.Ref.Address()] = struct{}{}

	log.Tracef("Added referral %v (size %v)", refHash, refSize)
	return nil
}

// testPackage returns whether a package with the provided aggregate size and
// signature operation cost still fits within the block limits.  It is a pure
// predicate with no side effects.
func (g *BlockAssembler) testPackage(packageSize int64, packageSigOps int64) bool {
	potentialWeight := int64(g.blockWeight) +
		wire.WitnessScaleFactor*packageSize
	if potentialWeight >= int64(g.cfg.Policy.BlockMaxWeight) {
		return false
	}
	if int64(g.blockSize)+packageSize >= int64(g.cfg.Policy.BlockMaxSize) {
		return false
	}
	if g.blockSigOps+packageSigOps >= g.cfg.ChainParams.MaxBlockSigOpsCost {
		return false
	}
	return true
}

// txLockTimeFinalized returns whether the provided transaction's lock time is
// satisfied in the context of the block being assembled.
func (g *BlockAssembler) txLockTimeFinalized(msgTx *wire.MsgTx) bool {
	lockTime := msgTx.LockTime
	if lockTime == 0 {
		return true
	}

	cutoff := int64(g.height)
	if lockTime >= lockTimeThreshold {
		cutoff = g.lockTimeCutoff
	}
	if int64(lockTime) < cutoff {
		return true
	}

	// The lock time has not expired, however a transaction with all of
	// its sequence numbers maxed out disables the lock time.
	for _, txIn := range msgTx.TxIn {
		if txIn.Sequence != wire.MaxTxInSequenceNum {
			return false
		}
	}
	return true
}

// testPackageContent performs the defensive per-transaction re-checks for a
// candidate package: lock time finality at the candidate block's context,
// premature witness data, and the aggregate transaction payload limit.
// These should never fail for packages admitted by a correct pool, but pool
// contents are not re-validated per block.
func (g *BlockAssembler) testPackageContent(pkg []*TxDesc) bool {
	var packageTxsSize int64
	for _, txDesc := range pkg {
		msgTx := txDesc.Tx.MsgTx()
		if !g.txLockTimeFinalized(msgTx) {
			log.Tracef("Skipping tx %v with unsatisfied lock time %d",
				txDesc.Tx.Hash(), msgTx.LockTime)
			return false
		}
		if !g.witnessActive && msgTx.HasWitness() {
			log.Tracef("Skipping tx %v with premature witness data",
				txDesc.Tx.Hash())
			return false
		}
		packageTxsSize += txDesc.TxSize
	}

	return int64(g.blockTxsSize)+packageTxsSize <=
		int64(g.cfg.Policy.TxsMaxSize)
}

// checkReferrals determines whether every output of every transaction in the
// candidate package can be linked to a referral that is already confirmed,
// already committed to this template, or pending in the referral source.  On
// success it returns the pending referrals the package requires, ordered so
// every referral appears after the referral that invited it.  The package is
// all-or-nothing: a single unlinkable output rejects the whole package.
func (g *BlockAssembler) checkReferrals(pkg []*TxDesc) ([]*RefDesc, bool) {
	var refsToAdd []*RefDesc
	queued := make(map[chainhash.Hash]struct{})
	beaconed := make(map[[wire.KeyIDSize]byte]struct{})

	for _, txDesc := range pkg {
		for _, txOut := range txDesc.Tx.MsgTx().TxOut {
			// Data carriers pay no one.
			if isNullDataScript(txOut.PkScript) {
				continue
			}

			keyID, ok := extractKeyID(txOut.PkScript)
			if !ok {
				log.Tracef("Tx %v pays an output with no extractable "+
					"address", txDesc.Tx.Hash())
				return nil, false
			}
			if g.cfg.HaveConfirmedReferral(keyID) {
				continue
			}
			if _, in := g.beaconedInBlock[keyID]; in {
				continue
			}
			if _, in := beaconed[keyID]; in {
				continue
			}

			ref := g.cfg.RefSource.ReferralForAddress(keyID)
			if ref == nil {
				log.Tracef("Tx %v pays address with no confirmed or "+
					"pending referral", txDesc.Tx.Hash())
				return nil, false
			}

			// Walk the invite chain until it anchors at the genesis
			// referral, a confirmed referral, or one already queued for
			// this block.
			chain := []*RefDesc{ref}
			for {
				prev := ref.Ref.PrevReferral()
				if prev.IsEqual(&zeroHash) ||
					g.cfg.IsReferralConfirmed(prev) {
					break
				}
				if _, in := g.refsInBlock[*prev]; in {
					break
				}
				if _, in := queued[*prev]; in {
					break
				}
				prevRef := g.cfg.RefSource.ReferralForHash(prev)
				if prevRef == nil {
					log.Tracef("Referral %v links to unknown "+
						"referral %v", ref.Ref.Hash(), prev)
					return nil, false
				}
				chain = append(chain, prevRef)
				ref = prevRef
			}

			// Queue inviters before invitees.
			for i := len(chain) - 1; i >= 0; i-- {
				r := chain[i]
				if _, in := queued[*r.Ref.Hash()]; in {
					continue
				}
				queued[*r.Ref.Hash()] = struct{}{}
				beaconed[r.Ref.Address()] = struct{}{}
				refsToAdd = append(refsToAdd, r)
			}
		}
	}

	return refsToAdd, true
}

// addReferrals commits the provided referrals to the block being built,
// skipping any already committed.
func (g *BlockAssembler) addReferrals(refs []*RefDesc) error {
	for _, ref := range refs {
		if _, in := g.refsInBlock[*ref.Ref.Hash()]; in {
			continue
		}
		if err := g.addReferral(ref); err != nil {
			return err
		}
	}
	return nil
}

// skipTxEntry returns whether the provided snapshot-order entry must be
// skipped: it has already been committed, it failed earlier in this run, or
// its snapshot-time aggregates are stale because a modified entry now shadows
// it.
func (g *BlockAssembler) skipTxEntry(txDesc *TxDesc, modIndex *modTxIndex,
	failedTx map[chainhash.Hash]struct{}) bool {

	txHash := txDesc.Tx.Hash()
	if _, in := g.inBlock[*txHash]; in {
		return true
	}
	if _, in := failedTx[*txHash]; in {
		return true
	}
	if _, in := modIndex.Get(txHash); in {
		return true
	}
	return false
}

// sortForBlock orders the provided package so every transaction appears
// after all of its in-package ancestors.  The snapshot ancestor counts
// provide the base partial order and transaction hashes break ties, so the
// result is reproducible for identical snapshots.
func (g *BlockAssembler) sortForBlock(view *TxMiningView, pkg []*TxDesc) {
	sort.Slice(pkg, func(i, j int) bool {
		iHash := pkg[i].Tx.Hash()
		jHash := pkg[j].Tx.Hash()
		iStats, _ := view.AncestorStats(iHash)
		jStats, _ := view.AncestorStats(jHash)
		if iStats.NumAncestors != jStats.NumAncestors {
			return iStats.NumAncestors < jStats.NumAncestors
		}
		return bytes.Compare(iHash[:], jHash[:]) < 0
	})
}

// markPackageFailed records every member of the provided package as failed
// for the remainder of the run so no member is retried, and drops any
// modified entries for them.
func markPackageFailed(pkg []*TxDesc, modIndex *modTxIndex,
	failedTx map[chainhash.Hash]struct{}) {

	for _, txDesc := range pkg {
		txHash := txDesc.Tx.Hash()
		failedTx[*txHash] = struct{}{}
		modIndex.remove(txHash)
	}
}

// updatePackagesForAdded decrements the remaining-ancestor aggregates of
// every snapshot transaction that depends on a member of the just-committed
// package, creating modified entries from the snapshot aggregates where none
// exist yet.  It returns the number of descendant updates performed.
func (g *BlockAssembler) updatePackagesForAdded(view *TxMiningView,
	added []*TxDesc, modIndex *modTxIndex) int {

	var updated int
	for _, addedDesc := range added {
		addedHash := addedDesc.Tx.Hash()
		view.ForEachDescendant(addedHash, func(descendant *TxDesc) {
			descendantHash := descendant.Tx.Hash()
			if _, in := g.inBlock[*descendantHash]; in {
				return
			}

			entry, exists := modIndex.Get(descendantHash)
			if !exists {
				stats, _ := view.AncestorStats(descendantHash)
				entry = modIndex.insert(descendant, *stats)
			}

			// The referral size aggregate is intentionally not
			// decremented: committed referrals shrink nothing for
			// descendants that still need their own.
			entry.stats.Fees -= addedDesc.Fee
			entry.stats.SizeBytes -= addedDesc.TxSize
			entry.stats.TotalSigOps -= addedDesc.TotalSigOps
			entry.stats.NumAncestors--
			modIndex.update(entry)
			updated++
		})
	}
	return updated
}

// addPackageTxs is the core selection loop.  It pulls the best scoring
// ancestor package from the interleaved snapshot and modified-entry indexes,
// validates it against the block limits and the referral linkage rule, and
// either commits it to the block or marks it failed, until no further
// package can qualify.
func (g *BlockAssembler) addPackageTxs(view *TxMiningView) error {
	sorted := view.AncestorRateSorted()
	modIndex := newModTxIndex()
	failedTx := make(map[chainhash.Hash]struct{})

	consecutiveFailures := 0
	txIdx := 0
	for txIdx < len(sorted) || modIndex.Len() > 0 {
		// Skip snapshot-order entries that are committed, failed, or
		// shadowed by a modified entry, so a stale cached score is
		// never acted on.
		if txIdx < len(sorted) &&
			g.skipTxEntry(sorted[txIdx], modIndex, failedTx) {
			txIdx++
			continue
		}

		// Select the better of the best surviving snapshot-order entry
		// and the best modified entry.  Committing transactions
		// continuously changes other entries' effective scores, and
		// interleaving the two indexes avoids re-sorting the snapshot
		// on every commit.
		var txDesc *TxDesc
		var stats TxAncestorStats
		fromModified := false
		if txIdx >= len(sorted) {
			entry := modIndex.peek()
			if entry == nil {
				break
			}
			txDesc = entry.desc
			stats = entry.stats
			fromModified = true
		} else {
			txDesc = sorted[txIdx]
			snapStats, _ := view.AncestorStats(txDesc.Tx.Hash())
			stats = *snapStats
			if entry := modIndex.peek(); entry != nil &&
				compareAncestorFeeRate(&entry.stats,
					entry.desc.Tx.Hash(), &stats,
					txDesc.Tx.Hash()) {
				txDesc = entry.desc
				stats = entry.stats
				fromModified = true
			}
		}
		if !fromModified {
			txIdx++
		}
		txHash := txDesc.Tx.Hash()

		// Once the best remaining package pays below the minimum fee
		// rate no later package can qualify either, since both indexes
		// yield packages in non-increasing score order.
		packageSize := stats.SizeBytes + stats.RefsSizeBytes
		minFee := FeeForSerializeSize(g.cfg.Policy.BlockMinFeeRate,
			packageSize)
		if stats.Fees < minFee {
			log.Debugf("Best package fee %v below minimum %v, "+
				"ending selection", stats.Fees, minFee)
			break
		}

		if !g.testPackage(packageSize, stats.TotalSigOps) {
			failedTx[*txHash] = struct{}{}
			modIndex.remove(txHash)
			consecutiveFailures++
			if consecutiveFailures > maxConsecutiveInsertFailures &&
				g.blockWeight >
					g.cfg.Policy.BlockMaxWeight-nearFullWeightMargin {
				log.Debugf("Giving up on a nearly full block after "+
					"%d failed packages", consecutiveFailures)
				break
			}
			continue
		}

		// Expand the entry into its remaining ancestor package,
		// filtering members already committed to the block.
		pkg := view.Ancestors(txHash, func(ancestor *TxDesc) bool {
			_, in := g.inBlock[*ancestor.Tx.Hash()]
			return !in
		})
		pkg = append(pkg, txDesc)

		// Order the package before the content checks so everything
		// from here on, including the referral queue, sees it in its
		// committed order.
		g.sortForBlock(view, pkg)

		if !g.testPackageContent(pkg) {
			markPackageFailed(pkg, modIndex, failedTx)
			consecutiveFailures++
			continue
		}

		refsToAdd, ok := g.checkReferrals(pkg)
		if !ok {
			markPackageFailed(pkg, modIndex, failedTx)
			consecutiveFailures++
			continue
		}

		for _, member := range pkg {
			if err := g.addTransaction(member); err != nil {
				return err
			}
			modIndex.remove(member.Tx.Hash())
		}
		if err := g.addReferrals(refsToAdd); err != nil {
			return err
		}
		consecutiveFailures = 0

		updated := g.updatePackagesForAdded(view, pkg, modIndex)
		log.Tracef("Committed package of %d txns and %d referrals, "+
			"updated %d descendants", len(pkg), len(refsToAdd), updated)
	}

	return nil
}

// createCoinbaseTx returns a coinbase transaction paying the provided value
// to the provided script.  The signature script encodes the required block
// height followed by the provided extra nonce.
func createCoinbaseTx(payToScript []byte, nextBlockHeight int32,
	extraNonce uint64, value int64) *wire.MsgTx {

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{
		// Coinbase transactions have no inputs, so previous outpoint
		// is zero hash and max index.
		PreviousOutPoint: *wire.NewOutPoint(&zeroHash,
			wire.MaxPrevOutIndex),
		SignatureScript: standardCoinbaseScript(nextBlockHeight,
			extraNonce),
		Sequence: wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{
		Value:    value,
		PkScript: payToScript,
	})
	return tx
}

// addWitnessCommitment computes the witness commitment over the provided
// block transactions and attaches it to the coinbase: the witness reserved
// value becomes the coinbase input witness and the commitment itself is
// appended as an unspendable output.  The commitment bytes are returned.
func addWitnessCommitment(coinbaseTx *wire.MsgTx, blockTxns []*meritutil.Tx) []byte {
	// The witness reserved value is all zeroes until a consensus
	// deployment gives it meaning.
	var witnessNonce [coinbaseWitnessDataLen]byte
	coinbaseTx.TxIn[0].Witness = wire.TxWitness{witnessNonce[:]}

	// The coinbase is always represented by a zero hash in the witness
	// merkle tree.
	witnessHashes := make([]chainhash.Hash, 0, len(blockTxns)+1)
	witnessHashes = append(witnessHashes, zeroHash)
	for _, tx := range blockTxns {
		witnessHashes = append(witnessHashes, tx.MsgTx().WitnessHash())
	}
	witnessRoot := standalone.CalcMerkleRootInPlace(witnessHashes)

	var preimage [2 * chainhash.HashSize]byte
	copy(preimage[:], witnessRoot[:])
	copy(preimage[chainhash.HashSize:], witnessNonce[:])
	commitment := chainhash.DoubleHashH(preimage[:])

	pkScript := make([]byte, 0, 2+len(witnessCommitmentHeader)+
		chainhash.HashSize)
	pkScript = append(pkScript, opReturn,
		byte(len(witnessCommitmentHeader)+chainhash.HashSize))
	pkScript = append(pkScript, witnessCommitmentHeader...)
	pkScript = append(pkScript, commitment[:]...)
	coinbaseTx.AddTxOut(wire.NewTxOut(0, pkScript))

	return pkScript
}

// medianAdjustedTime returns the current time adjusted to ensure it is at
// least one second after the median timestamp of the last several blocks per
// the chain consensus rules.
func medianAdjustedTime(best *BestState, timeSource MedianTimeSource) time.Time {
	// The timestamp for the block must not be before the median timestamp
	// of the last several blocks.  Thus, choose the maximum between the
	// current time and one second after the past median time.  The current
	// timestamp is truncated to a second boundary before comparison since
	// a block timestamp does not support a precision greater than one
	// second.
	newTimestamp := time.Unix(timeSource.AdjustedTime().Unix(), 0)
	minTimestamp := best.MedianTime.Add(time.Second)
	if newTimestamp.Before(minTimestamp) {
		newTimestamp = minTimestamp
	}

	return newTimestamp
}

// NewExtraNonce returns a cryptographically random extra nonce for the
// coinbase signature script.
func NewExtraNonce() uint64 {
	return rand.Uint64()
}

// NewBlockTemplate returns a new block template that is ready to be solved
// using the transactions from the transaction source pool, the referrals from
// the referral source pool, and a coinbase that pays to the provided script.
//
// The selected transactions are ordered so every transaction appears after
// all of its dependencies, every paying output is linked to a confirmed or
// co-included referral, and the block limits configured via the policy are
// respected at every step.  For a fixed pool snapshot and configuration the
// returned template is identical across calls; randomness only enters via
// the separate extra nonce helpers.
//
// The template returned contains the assembled block along with per
// transaction fee and signature operation accounting; see BlockTemplate.
func (g *BlockAssembler) NewBlockTemplate(payToScript []byte) (*BlockTemplate, error) {
	best := g.cfg.BestSnapshot()
	nextHeight := best.Height + 1

	g.reset(nextHeight)
	g.lockTimeCutoff = best.MedianTime.Unix()
	g.witnessActive = g.cfg.IsWitnessActive()

	// The transaction source snapshot carries mutually consistent
	// ancestor and descendant aggregates for the duration of the run.
	view := g.cfg.TxSource.MiningView()
	if err := g.addPackageTxs(view); err != nil {
		return nil, err
	}

	// Materialize the coinbase carrying the collected fees.
	subsidy := g.cfg.CalcBlockSubsidy(nextHeight)
	coinbaseTx := createCoinbaseTx(payToScript, nextHeight, 0,
		subsidy+g.totalFees)

	var commitment []byte
	if g.witnessActive {
		witnessIncluded := false
		for _, tx := range g.blockTxns {
			if tx.MsgTx().HasWitness() {
				witnessIncluded = true
				break
			}
		}
		if witnessIncluded {
			commitment = addWitnessCommitment(coinbaseTx, g.blockTxns)
		}
	}
	g.txFees[0] = -g.totalFees
	g.txSigOps[0] = countSigOps(coinbaseTx.TxIn[0].SignatureScript) +
		countSigOps(payToScript)

	// Assemble the block body with the coinbase as the first transaction.
	merkleLeaves := make([]chainhash.Hash, 0, len(g.blockTxns)+1)
	merkleLeaves = append(merkleLeaves, coinbaseTx.TxHash())
	msgBlock := &wire.MsgBlock{
		Transactions: make([]*wire.MsgTx, 0, len(g.blockTxns)+1),
		Referrals:    make([]*wire.MsgReferral, 0, len(g.blockRefs)),
	}
	if err := msgBlock.AddTransaction(coinbaseTx); err != nil {
		return nil, makeError(ErrTransactionAppend, err.Error())
	}
	for _, tx := range g.blockTxns {
		if err := msgBlock.AddTransaction(tx.MsgTx()); err != nil {
			return nil, makeError(ErrTransactionAppend, err.Error())
		}
		merkleLeaves = append(merkleLeaves, *tx.Hash())
	}
	refLeaves := make([]chainhash.Hash, 0, len(g.blockRefs))
	for _, ref := range g.blockRefs {
		if err := msgBlock.AddReferral(ref.MsgReferral()); err != nil {
			return nil, makeError(ErrReferralAppend, err.Error())
		}
		refLeaves = append(refLeaves, *ref.Hash())
	}

	// Fill the header in with everything except the proof of work.
	ts := medianAdjustedTime(best, g.cfg.TimeSource)
	requiredDifficulty, err := g.cfg.CalcNextRequiredDifficulty(ts)
	if err != nil {
		str := fmt.Sprintf("failed to calculate the next required "+
			"difficulty: %v", err)
		return nil, makeError(ErrGettingDifficulty, str)
	}
	msgBlock.Header = wire.BlockHeader{
		Version:      generatedBlockVersion,
		PrevBlock:    best.Hash,
		MerkleRoot:   standalone.CalcMerkleRootInPlace(merkleLeaves),
		ReferralRoot: standalone.CalcMerkleRootInPlace(refLeaves),
		Timestamp:    ts,
		Bits:         requiredDifficulty,
		EdgeBits:     g.cfg.ChainParams.NodesBits,
	}

	// Bookkeeping invariant: the parallel fee and sigop sequences must be
	// index-aligned with the block's transaction list.
	if len(g.txFees) != len(msgBlock.Transactions) ||
		len(g.txSigOps) != len(msgBlock.Transactions) {
		str := fmt.Sprintf("fee and sigop accounting of length %d/%d "+
			"does not match %d block transactions", len(g.txFees),
			len(g.txSigOps), len(msgBlock.Transactions))
		return nil, makeError(ErrTemplateBookkeeping, str)
	}

	log.Debugf("Created new block template (%d transactions, %d "+
		"referrals, %d in fees, %d signature operations, %d bytes, "+
		"target difficulty %064x)", len(msgBlock.Transactions),
		len(msgBlock.Referrals), g.totalFees, g.blockSigOps,
		msgBlock.SerializeSize(), requiredDifficulty)

	return &BlockTemplate{
		Block:              msgBlock,
		Fees:               g.txFees,
		SigOpCounts:        g.txSigOps,
		Height:             nextHeight,
		CoinbaseCommitment: commitment,
	}, nil
}

// UpdateExtraNonce updates the extra nonce in the coinbase signature script
// of the passed block and recalculates the merkle root to match, so miners
// can extend the proof of work search space without rebuilding the template.
func UpdateExtraNonce(msgBlock *wire.MsgBlock, blockHeight int32,
	extraNonce uint64) error {

	if len(msgBlock.Transactions) == 0 {
		return makeError(ErrTemplateBookkeeping,
			"block has no coinbase transaction")
	}

	coinbaseTx := msgBlock.Transactions[0]
	coinbaseTx.TxIn[0].SignatureScript = standardCoinbaseScript(blockHeight,
		extraNonce)

	merkleLeaves := make([]chainhash.Hash, 0, len(msgBlock.Transactions))
	for _, tx := range msgBlock.Transactions {
		merkleLeaves = append(merkleLeaves, tx.TxHash())
	}
	msgBlock.Header.MerkleRoot = standalone.CalcMerkleRootInPlace(merkleLeaves)
	return nil
}
